package publish

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks the user to confirm or choose during a release.
type Prompter interface {
	Confirm(question string, defaultYes bool) (bool, error)
	Select(question string, choices []string) (int, error)
}

// LinePrompter prompts on a line-oriented stream such as a terminal.
type LinePrompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewLinePrompter reads answers from r and writes questions to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(r), w: w}
}

// Confirm asks a yes/no question. An empty answer, or end of input, takes
// the default.
func (p *LinePrompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "(y/N)"
	if defaultYes {
		hint = "(Y/n)"
	}
	fmt.Fprintf(p.w, "? %s %s ", question, hint)

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	answer := strings.TrimSpace(strings.ToLower(line))
	switch answer {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Select shows a numbered menu and returns the zero-based choice. Entering 0
// cancels with ErrAborted.
func (p *LinePrompter) Select(question string, choices []string) (int, error) {
	fmt.Fprintf(p.w, "\n%s\n", question)
	for i, item := range choices {
		fmt.Fprintf(p.w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintln(p.w, "  0) Cancel")
	fmt.Fprintf(p.w, "Enter number [0-%d]: ", len(choices))

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 0 || num > len(choices) {
		return 0, fmt.Errorf("invalid selection %q: choose 0-%d", strings.TrimSpace(line), len(choices))
	}
	if num == 0 {
		return 0, ErrAborted
	}
	return num - 1, nil
}

// AssumeYes answers every confirmation with yes, for unattended releases.
// It cannot choose from a menu; pass the choice up front instead.
type AssumeYes struct{}

// Confirm implements Prompter.
func (AssumeYes) Confirm(string, bool) (bool, error) { return true, nil }

// Select implements Prompter.
func (AssumeYes) Select(question string, _ []string) (int, error) {
	return 0, fmt.Errorf("%s: no interactive input available", strings.TrimSuffix(question, ":"))
}
