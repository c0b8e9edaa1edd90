package cli

import (
	"context"
	"fmt"
	"strings"

	"task-manager/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command. The first argument is the title and the
// remaining arguments are joined into the description.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return c.app.errorHandler.Handle("add task",
			errors.NewInvalidInputError("arguments", args, `usage: add "title" "description"`))
	}

	record, err := c.app.api.AddTask(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %d: %s\n", len(c.app.api.ListTasks()), record.Title)
	return nil
}
