package cli

import (
	"context"
	"fmt"

	"task-manager/internal/errors"
)

// SaveCommand writes the task list to a file
type SaveCommand struct {
	app *App
}

// NewSaveCommand creates a new save command handler
func NewSaveCommand(app *App) *SaveCommand {
	return &SaveCommand{app: app}
}

// Execute saves to the given path, or to the configured data file
func (c *SaveCommand) Execute(ctx context.Context, args []string) error {
	path, err := optionalPath("save", args)
	if err != nil {
		return c.app.errorHandler.Handle("save tasks", err)
	}

	if err := c.app.api.SaveTasks(ctx, path); err != nil {
		return c.app.errorHandler.Handle("save tasks", err)
	}

	fmt.Fprintf(c.app.out, "Saved %d tasks to %s\n", len(c.app.api.ListTasks()), c.displayPath(path))
	return nil
}

func (c *SaveCommand) displayPath(path string) string {
	if path == "" {
		return c.app.api.DefaultPath()
	}
	return path
}

// LoadCommand replaces the task list with the contents of a file
type LoadCommand struct {
	app *App
}

// NewLoadCommand creates a new load command handler
func NewLoadCommand(app *App) *LoadCommand {
	return &LoadCommand{app: app}
}

// Execute loads from the given path, or from the configured data file.
// The current list is kept when loading fails.
func (c *LoadCommand) Execute(ctx context.Context, args []string) error {
	path, err := optionalPath("load", args)
	if err != nil {
		return c.app.errorHandler.Handle("load tasks", err)
	}

	n, err := c.app.api.LoadTasks(ctx, path)
	if err != nil {
		return c.app.errorHandler.Handle("load tasks", err)
	}

	if path == "" {
		path = c.app.api.DefaultPath()
	}
	fmt.Fprintf(c.app.out, "Loaded %d tasks from %s\n", n, path)
	return nil
}

func optionalPath(command string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		return "", errors.NewInvalidInputError("arguments", args, "usage: "+command+" [path]")
	}
}
