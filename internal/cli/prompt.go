package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// lineSource reads one line of input shown after a prompt string. An
// io.EOF error means the input ended or the user aborted; the menu
// treats that as a request to exit.
type lineSource interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// newLineSource picks the input implementation: readline-style editing
// via liner when running on a real terminal, a plain line scanner for
// pipes and tests.
func newLineSource(stdin io.Reader, out io.Writer) lineSource {
	if stdin == os.Stdin && liner.TerminalSupported() {
		return newLinerSource()
	}

	return &readerSource{out: out, scanner: bufio.NewScanner(stdin)}
}

// linerSource wraps liner for terminal sessions.
type linerSource struct {
	state *liner.State
}

func newLinerSource() *linerSource {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &linerSource{state: state}
}

func (l *linerSource) Prompt(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}

		return "", err
	}

	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}

	return line, nil
}

func (l *linerSource) Close() error {
	return l.state.Close()
}

// readerSource reads lines from a plain reader, echoing the prompt to
// out first.
type readerSource struct {
	out     io.Writer
	scanner *bufio.Scanner
}

func (r *readerSource) Prompt(prompt string) (string, error) {
	_, _ = fmt.Fprint(r.out, prompt)

	if !r.scanner.Scan() {
		scanErr := r.scanner.Err()
		if scanErr != nil {
			return "", scanErr
		}

		return "", io.EOF
	}

	return r.scanner.Text(), nil
}

func (r *readerSource) Close() error {
	return nil
}
