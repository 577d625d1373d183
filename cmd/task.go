package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap"
	domainstudio "github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

var (
	todoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	doingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the studio task list",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		notes, _ := cmd.Flags().GetString("notes")

		task, err := svc.CreateTask(cmd.Context(), studio.CreateTaskInput{
			Title: strings.Join(cmd.Flags().Args(), " "),
			Notes: notes,
		})
		if err != nil {
			return errs.Wrap(err, "create task")
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %s: %s\n", task.ID, task.Title)
		return err
	}),
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks (finished tasks hidden unless --all)",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		status, _ := cmd.Flags().GetString("status")
		query, _ := cmd.Flags().GetString("query")
		all, _ := cmd.Flags().GetBool("all")

		tasks, err := svc.ListTasks(cmd.Context(), studio.TaskListInput{
			Status:      status,
			Query:       query,
			IncludeDone: all,
		})
		if err != nil {
			return errs.Wrap(err, "list tasks")
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			_, err := fmt.Fprintln(out, dimStyle.Render("no tasks"))
			return err
		}

		for _, task := range tasks {
			line := fmt.Sprintf("%s  %s  %s", task.ID, renderStatus(task.Status), task.Title)
			if task.Notes != "" {
				line += "  " + dimStyle.Render(task.Notes)
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return errs.Wrap(err, "write task output")
			}
		}
		return nil
	}),
}

var taskStatusCmd = &cobra.Command{
	Use:   "status <id> <todo|doing|done>",
	Short: "Move a task to another status",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		task, err := svc.UpdateTaskStatus(cmd.Context(), cmd.Flags().Arg(0), cmd.Flags().Arg(1))
		if err != nil {
			return errs.Wrap(err, "update task status")
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", task.ID, renderStatus(task.Status))
		return err
	}),
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		task, err := svc.UpdateTaskStatus(cmd.Context(), cmd.Flags().Arg(0), string(domainstudio.StatusDone))
		if err != nil {
			return errs.Wrap(err, "complete task")
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "done: %s\n", task.Title)
		return err
	}),
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		id := cmd.Flags().Arg(0)
		if err := svc.DeleteTask(cmd.Context(), id); err != nil {
			return errs.Wrap(err, "delete task")
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		return err
	}),
}

func renderStatus(status domainstudio.TaskStatus) string {
	switch status {
	case domainstudio.StatusTodo:
		return todoStyle.Render("todo")
	case domainstudio.StatusDoing:
		return doingStyle.Render("doing")
	case domainstudio.StatusDone:
		return doneStyle.Render("done")
	default:
		return string(status)
	}
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskStatusCmd, taskDoneCmd, taskDeleteCmd)

	taskAddCmd.Flags().String("notes", "", "Free-form notes")
	taskListCmd.Flags().String("status", "", "Filter by status")
	taskListCmd.Flags().String("query", "", "Substring match on title and notes")
	taskListCmd.Flags().Bool("all", false, "Include finished tasks")
}
