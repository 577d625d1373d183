package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect generation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded generations, newest first",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		kind, _ := cmd.Flags().GetString("kind")
		limit, _ := cmd.Flags().GetInt("limit")

		gens, err := svc.ListGenerations(cmd.Context(), studio.HistoryFilter{Kind: kind, Limit: limit})
		if err != nil {
			return errs.Wrap(err, "list generations")
		}

		out := cmd.OutOrStdout()
		if len(gens) == 0 {
			_, err := fmt.Fprintln(out, dimStyle.Render("history is empty"))
			return err
		}

		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d generation(s)", len(gens))))
		for _, gen := range gens {
			line := fmt.Sprintf("%s  %s  %s  %s",
				gen.ID,
				kindStyle.Render(string(gen.Kind)),
				gen.SourceRef,
				dimStyle.Render(gen.CreatedAt),
			)
			if _, err := fmt.Fprintln(out, line); err != nil {
				return errs.Wrap(err, "write history output")
			}
		}
		return nil
	}),
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one generation",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		gen, err := svc.GetGeneration(cmd.Context(), cmd.Flags().Arg(0))
		if err != nil {
			return errs.Wrap(err, "get generation")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(gen.ID))
		fmt.Fprintf(out, "kind:    %s\n", kindStyle.Render(string(gen.Kind)))
		fmt.Fprintf(out, "source:  %s\n", gen.SourceRef)
		if gen.StyleID != "" {
			fmt.Fprintf(out, "style:   %s\n", gen.StyleID)
		}
		fmt.Fprintf(out, "payload: %d bytes (%s)\n", len(gen.Payload), gen.MIMEType)
		fmt.Fprintf(out, "created: %s\n", dimStyle.Render(gen.CreatedAt))
		if gen.Summary != "" {
			fmt.Fprintln(out, strings.TrimSpace(gen.Summary))
		}

		if save, _ := cmd.Flags().GetString("save"); save != "" {
			if err := os.WriteFile(save, gen.Payload, 0o644); err != nil {
				return errs.Wrapf(err, "write artifact %q", save)
			}
			fmt.Fprintf(out, "payload written to %s\n", save)
		}
		return nil
	}),
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete one generation",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		id := cmd.Flags().Arg(0)
		if err := svc.DeleteGeneration(cmd.Context(), id); err != nil {
			return errs.Wrap(err, "delete generation")
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		return err
	}),
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all generations",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		if err := svc.ClearGenerations(cmd.Context()); err != nil {
			return errs.Wrap(err, "clear generations")
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return err
	}),
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyClearCmd)

	historyListCmd.Flags().String("kind", "", "Filter by artifact kind")
	historyListCmd.Flags().Int("limit", 0, "Maximum entries to list")
	historyShowCmd.Flags().String("save", "", "Also write the payload to this path")
}
