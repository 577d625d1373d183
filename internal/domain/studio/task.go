package studio

import (
	"fmt"
	"strings"
)

// TaskStatus is the lifecycle state of a task list entry.
type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

// NormalizeTaskStatus maps user-supplied status strings, including a few
// common aliases, onto the canonical set.
func NormalizeTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "open", "pending":
		return StatusTodo, nil
	case "doing", "in-progress", "active":
		return StatusDoing, nil
	case "done", "complete", "completed":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
}

// Task is a user to-do entry kept alongside generation history.
type Task struct {
	ID        string
	Title     string
	Notes     string
	Status    TaskStatus
	CreatedAt string
	UpdatedAt string
}

// TaskFilter narrows a task listing. Zero value means "everything still
// open": done tasks are hidden unless IncludeDone is set or Status
// explicitly asks for them.
type TaskFilter struct {
	Status      TaskStatus
	Query       string
	IncludeDone bool
}

// MatchesFilter applies f to a single task.
func MatchesFilter(t Task, f TaskFilter) bool {
	if f.Status != "" {
		if t.Status != f.Status {
			return false
		}
	} else if t.Status == StatusDone && !f.IncludeDone {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		haystack := strings.ToLower(t.Title + "\n" + t.Notes)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// FilterTasks keeps the tasks matching f, preserving order.
func FilterTasks(tasks []Task, f TaskFilter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if MatchesFilter(t, f) {
			out = append(out, t)
		}
	}
	return out
}
