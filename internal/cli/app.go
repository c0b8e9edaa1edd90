package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"task-manager/internal/api"
	"task-manager/internal/config"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/logging"
)

// App represents the main CLI application
type App struct {
	api          api.API
	config       *config.Config
	in           *bufio.Reader
	out          io.Writer
	registry     *CommandRegistry
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application reading stdin and writing stdout
func NewApp(apiInstance api.API, cfg *config.Config) *App {
	return NewAppWithIO(apiInstance, cfg, os.Stdin, os.Stdout)
}

// NewAppWithIO creates a new CLI application with explicit input and output
func NewAppWithIO(apiInstance api.API, cfg *config.Config, in io.Reader, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:          apiInstance,
		config:       cfg,
		in:           bufio.NewReader(in),
		out:          out,
		errorHandler: NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes a single command against the in-memory task list
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	commandName := args[0]
	if _, ok := a.registry.commands[commandName]; !ok {
		return fmt.Errorf("unknown command %q\n%s", commandName, a.registry.GetUsage())
	}

	return a.registry.Execute(ctx, commandName, args[1:])
}

// RunWithDataFile loads the configured data file (if it exists), runs the
// command, and saves the list back when persist is true. It is the one-shot
// counterpart of the interactive shell.
func (a *App) RunWithDataFile(ctx context.Context, args []string, persist bool) error {
	if _, err := a.api.LoadTasks(ctx, ""); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return a.errorHandler.Handle("load tasks", err)
		}
		logging.Debugf("no data file at %s, starting empty\n", a.api.DefaultPath())
	}

	if err := a.Run(ctx, args); err != nil {
		return err
	}

	if !persist {
		return nil
	}
	if err := a.api.SaveTasks(ctx, ""); err != nil {
		return a.errorHandler.Handle("save tasks", err)
	}
	return nil
}

// readLine reads one line of input without its line ending.
// io.EOF is returned only when no characters were read.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parsePosition converts a 1-based position typed by the user into a list index
func parsePosition(arg string) (int, error) {
	position, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || position < 1 {
		return 0, apperrors.NewInvalidInputError("position", arg, "must be a whole number starting at 1")
	}
	return position - 1, nil
}

// positionError reports index errors with 1-based positions
func (a *App) positionError(operation string, index int, err error) error {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || !a.errorHandler.IsIndexError(err) {
		return a.errorHandler.Handle(operation, err)
	}

	n := len(a.api.ListTasks())
	if length, ok := appErr.GetContext("length"); ok {
		n, _ = length.(int)
	}
	message := fmt.Sprintf("failed to %s: there is no task %d, the list is empty", operation, index+1)
	if n > 0 {
		message = fmt.Sprintf("failed to %s: there is no task %d, choose 1 to %d", operation, index+1, n)
	}
	return &handledError{message: message, cause: err}
}

// truncate shortens s to width characters for single-line display
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if width <= 3 || len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
