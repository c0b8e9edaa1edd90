package cli

import (
	"context"
	"fmt"

	"task-manager/internal/errors"
)

// ShowCommand previews an existing task
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute prints the full title and description of the task at the given position
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errorHandler.Handle("show task",
			errors.NewInvalidInputError("arguments", args, "usage: show N"))
	}

	index, err := parsePosition(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("show task", err)
	}

	preview, err := c.app.api.PreviewExisting(index)
	if err != nil {
		return c.app.positionError("show task", index, err)
	}

	fmt.Fprintf(c.app.out, "Task %d\nTitle: %s\nDescription:\n%s\n", preview.Index+1, preview.Title, preview.Description)
	return nil
}
