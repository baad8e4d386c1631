// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasko/internal/service"
	"tasko/internal/store"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {DESCRIPTION}\n" (4-wide right-aligned
// number, completion checkbox, description).
func FormatTask(w io.Writer, num int, task service.Task) {
	box := " "
	if task.Completed {
		box = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, box, normalizeDescription(task.Description))
}

// FormatStats formats the derived counts footer.
// Format: "3 tasks: 2 active, 1 completed".
func FormatStats(w io.Writer, stats store.Stats) {
	noun := "tasks"
	if stats.Total == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "%d %s: %d active, %d completed\n", stats.Total, noun, stats.Active, stats.Completed)
}

// normalizeDescription normalizes a task description for display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	if strings.TrimSpace(desc) == "" {
		return "(untitled)"
	}
	return desc
}
