package cli

import (
	"context"
	"fmt"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	tasks := c.app.api.ListTasks()
	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks")
		return nil
	}

	width := c.app.config.Display.PreviewWidth
	for i, task := range tasks {
		fmt.Fprintf(c.app.out, "%3d. %s\n", i+1, truncate(task.Title, width))
		if c.app.config.Application.Verbose {
			fmt.Fprintf(c.app.out, "     %s\n", truncate(task.Description, width))
		}
	}
	return nil
}
