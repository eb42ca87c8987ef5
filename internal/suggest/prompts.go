// ABOUTME: Deterministic prompt builders for the three suggestion kinds
// ABOUTME: Prompts instruct the generator toward a machine-parseable reply shape

package suggest

import (
	"fmt"
	"strings"
)

// taskContext renders the shared title/description block. The description
// line is omitted entirely when empty so prompts stay deterministic for the
// same input.
func taskContext(title, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task Title: %s\n", title)
	if description != "" {
		fmt.Fprintf(&b, "Task Description: %s\n", description)
	}
	return b.String()
}

func subtasksPrompt(title, description string) string {
	return `You are a task management assistant. Break down the following task into 3-5 specific, actionable subtasks.

` + taskContext(title, description) + `
Provide only the subtask titles, one per line. Make them clear, specific, and actionable.
Do not include numbering or bullet points.
`
}

func priorityPrompt(title, description string) string {
	return `You are a task management assistant. Analyze this task and suggest a priority level.

` + taskContext(title, description) + `
Respond with ONLY one word: low, medium, high, or urgent
`
}

func minutesPrompt(title, description string) string {
	return `You are a task management assistant. Estimate how many minutes this task will take.

` + taskContext(title, description) + `
Respond with ONLY a number representing minutes (e.g., 30, 60, 120).
Be realistic and consider typical work scenarios.
`
}
