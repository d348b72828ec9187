package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, text string) error
	ToggleTag(ctx context.Context, tag string) error
	Tags(ctx context.Context) error
	SortBy(ctx context.Context, key string) error
	ClearFilter(ctx context.Context) error
	Export(ctx context.Context, dir string) error
	Import(ctx context.Context, path string) error
	Reload(ctx context.Context) error
}

var commands = []string{
	"help", "list", "show", "add", "edit", "delete", "search", "tag", "tags",
	"sort", "clear", "export", "import", "reload", "exit", "quit",
}

const helpText = `Available commands:
  (l)ist            list prompts matching the current filter
  show <id>         show a prompt in full
  add               create a prompt
  edit <id>         edit a prompt (empty input keeps a field)
  delete <id>       delete a prompt
  search [text]     set the search text (no text clears it)
  tag <tag>         select or deselect a tag
  tags              show all tags, selected ones marked with *
  sort <key>        newest | oldest | alphabetical
  clear             reset search, tags and sort
  export [dir]      write a JSON backup
  import <file>     load a JSON backup
  reload            reload prompts from the database
  exit | quit       leave the program`

// completeCommand offers command names for the first word on the line.
func completeCommand(line string) []string {
	if strings.ContainsRune(line, ' ') {
		return nil
	}
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			out = append(out, c)
		}
	}
	return out
}

// runREPL starts the read–eval–print loop.
//
// It reads a line from in, parses the first token as the command and the
// rest as its argument, and dispatches to methods on a. Unknown commands are
// reported back to the user. The loop exits when input ends, when the user
// types "exit" or "quit", or when ctx is cancelled.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in lineReader) {
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := in.Prompt(fmt.Sprintf("pk %s> ", statusFn()))
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		in.AppendHistory(line)

		cmd := strings.ToLower(parts[0])
		arg := strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "show", "edit", "delete", "tag", "sort", "import":
			if arg == "" {
				printlnFn(fmt.Sprintf("Usage: %s <%s>", cmd, argNames[cmd]))
				continue
			}
			dispatchWithArg(ctx, a, cmd, arg)

		case "add":
			_ = a.Add(ctx)

		case "search":
			_ = a.Search(ctx, arg)

		case "tags":
			_ = a.Tags(ctx)

		case "clear":
			_ = a.ClearFilter(ctx)

		case "export":
			_ = a.Export(ctx, arg)

		case "reload":
			_ = a.Reload(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatchWithArg(ctx context.Context, a execIface, cmd, arg string) {
	switch cmd {
	case "show":
		_ = a.Show(ctx, arg)
	case "edit":
		_ = a.Edit(ctx, arg)
	case "delete":
		_ = a.Delete(ctx, arg)
	case "tag":
		_ = a.ToggleTag(ctx, arg)
	case "sort":
		_ = a.SortBy(ctx, arg)
	case "import":
		_ = a.Import(ctx, arg)
	}
}

var argNames = map[string]string{
	"show":   "id",
	"edit":   "id",
	"delete": "id",
	"tag":    "tag",
	"sort":   "key",
	"import": "file",
}
