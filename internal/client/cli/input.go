package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// lineReader is the line source the REPL and the input helpers read from.
// *liner.State satisfies it; bufioReader is the fallback when stdin is not
// a terminal.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type bufioReader struct {
	r *bufio.Reader
	w io.Writer
}

func newBufioReader(r io.Reader, w io.Writer) *bufioReader {
	return &bufioReader{r: bufio.NewReader(r), w: w}
}

// Prompt prints prompt and reads one line without its line ending. If EOF
// follows a partial line, the partial line is returned.
func (b *bufioReader) Prompt(prompt string) (string, error) {
	if prompt != "" {
		if _, err := fmt.Fprint(b.w, prompt); err != nil {
			return "", err
		}
	}
	line, err := b.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *bufioReader) AppendHistory(string) {}

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// newLineReader returns a liner-backed reader with history and command
// completion when stdin is a terminal, and a plain buffered reader otherwise.
// The returned func restores the terminal or closes stdin.
func newLineReader() (lineReader, func() error) {
	if !isTerminal(int(os.Stdin.Fd())) {
		return newBufioReader(os.Stdin, os.Stdout), os.Stdin.Close
	}

	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	l.SetCompleter(completeCommand)
	return l, l.Close
}

// GetSimpleText prints a prompt to w and reads a single trimmed line.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(in lineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintln(w, prompt); err != nil {
		return "", err
	}
	line, err := in.Prompt("> ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line is
// entered (i.e., the user presses Enter twice) or input ends. The collected
// text is joined with '\n' and trimmed.
func GetMultiline(in lineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := in.Prompt("")
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// Confirm asks a question and reports whether the answer was exactly "yes".
func Confirm(in lineReader, question string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(in, question+" Type 'yes' to confirm.", w)
	if err != nil {
		return false, err
	}
	return answer == "yes", nil
}
