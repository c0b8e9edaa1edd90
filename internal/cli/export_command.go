package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"task-manager/internal/errors"
	"task-manager/internal/persistence"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// Execute writes the task list as csv or pdf to the output or to a file.
// Accepted forms: export, export csv, export format=pdf, export pdf tasks.pdf
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 2 {
		return c.app.errorHandler.Handle("export tasks",
			errors.NewInvalidInputError("arguments", args, "usage: export csv|pdf [path]"))
	}

	format := c.app.config.Commands.ExportDefaultFormat
	if len(args) > 0 {
		format = strings.TrimPrefix(args[0], "format=")
	}

	if len(args) < 2 {
		if err := c.app.api.ExportTasks(c.app.out, format); err != nil {
			return c.app.errorHandler.Handle("export tasks", err)
		}
		return nil
	}

	// A bad format or a failed render must leave an existing file untouched.
	path := args[1]
	var buf bytes.Buffer
	if err := c.app.api.ExportTasks(&buf, format); err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}

	perm := os.FileMode(c.app.config.Storage.FilePermissions)
	if err := persistence.WriteFile(path, buf.Bytes(), perm); err != nil {
		wrapped := errors.WrapError(err, errors.ErrorTypePersistence, "could not write "+path).
			WithContext("path", path).
			WithContext("format", format)
		return c.app.errorHandler.Handle("export tasks", wrapped)
	}

	fmt.Fprintf(c.app.out, "Exported %d tasks to %s\n", len(c.app.api.ListTasks()), path)
	return nil
}
