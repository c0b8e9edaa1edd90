package cli

import (
	"context"
	"fmt"

	"task-manager/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute removes the task at the given 1-based position.
// Positions outside the list are reported as errors.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errorHandler.Handle("delete task",
			errors.NewInvalidInputError("arguments", args, "usage: delete N"))
	}

	index, err := parsePosition(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	removed, err := c.app.api.DeleteTask(index)
	if err != nil {
		return c.app.positionError("delete task", index, err)
	}

	fmt.Fprintf(c.app.out, "Deleted task %d: %s\n", index+1, removed.Title)
	return nil
}
