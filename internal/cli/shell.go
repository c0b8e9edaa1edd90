package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"task-manager/internal/logging"
)

const shellPrompt = "tm> "

// Shell runs commands against one in-memory task list until the input ends
// or the user quits. Nothing is written to disk unless the user saves.
func (a *App) Shell(ctx context.Context) error {
	fmt.Fprintf(a.out, "Task manager. Type \"help\" for commands. Data file: %s\n", a.api.DefaultPath())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(a.out, shellPrompt)
		line, err := a.readLine()
		if stderrors.Is(err, io.EOF) {
			fmt.Fprintln(a.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return nil
		case "help":
			a.printHelp()
			continue
		}

		logging.Debugf("shell: running %q with %d args\n", args[0], len(args)-1)
		if err := a.Run(ctx, args); err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, `  new                        compose a task at the prompt`)
	fmt.Fprintln(a.out, `  add "title" "description"  add a task`)
	fmt.Fprintln(a.out, `  list                       list task titles`)
	fmt.Fprintln(a.out, `  show N                     show task N in full`)
	fmt.Fprintln(a.out, `  delete N                   delete task N`)
	fmt.Fprintln(a.out, `  save [path]                save the list`)
	fmt.Fprintln(a.out, `  load [path]                replace the list with a saved one`)
	fmt.Fprintln(a.out, `  export csv|pdf [path]      export the list`)
	fmt.Fprintln(a.out, `  help                       show this help`)
	fmt.Fprintln(a.out, `  quit                       leave without saving`)
}

// splitArgs splits a shell line on whitespace. Single or double quotes group
// words and a backslash escapes the next character.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inWord  bool
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		current.WriteRune('\\')
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
