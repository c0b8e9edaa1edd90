package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// descriptionTerminator ends a multi-line description typed at the prompt
const descriptionTerminator = "."

// ComposeCommand asks for the title and description of a new task
type ComposeCommand struct {
	app *App
}

// NewComposeCommand creates a new compose command handler
func NewComposeCommand(app *App) *ComposeCommand {
	return &ComposeCommand{app: app}
}

// Execute prompts for a title and a multi-line description, then adds the task
func (c *ComposeCommand) Execute(ctx context.Context, args []string) error {
	draft := c.app.api.ComposeNew()

	fmt.Fprint(c.app.out, "Title: ")
	title, err := c.app.readLine()
	if err != nil {
		return c.inputError(err)
	}
	draft.Title = title

	fmt.Fprintf(c.app.out, "Description (finish with a line containing only %q):\n", descriptionTerminator)
	var lines []string
	for {
		line, err := c.app.readLine()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return c.inputError(err)
		}
		if line == descriptionTerminator {
			break
		}
		lines = append(lines, line)
	}
	draft.Description = strings.Join(lines, "\n")

	record, err := c.app.api.AddTask(draft.Title, draft.Description)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %d: %s\n", len(c.app.api.ListTasks()), record.Title)
	return nil
}

func (c *ComposeCommand) inputError(err error) error {
	if stderrors.Is(err, io.EOF) {
		return fmt.Errorf("failed to add task: input ended before a title was entered")
	}
	return fmt.Errorf("failed to read input: %w", err)
}
