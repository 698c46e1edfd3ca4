// Package prompt collects missing configuration interactively when plexextras
// runs attached to a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when the user backs out of a prompt.
var ErrCancelled = errors.New("cancelled")

// ErrNotInteractive is returned when input is required but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("interactive input required but stdin is not a terminal")

// Choice is one selectable option in a numbered menu.
type Choice struct {
	Key   string
	Label string
}

// Prompter reads answers from a terminal (or any reader in tests).
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// New returns a Prompter over stdin/stdout. Prompting is only enabled when
// stdin is a terminal.
func New() *Prompter {
	fd := os.Stdin.Fd()
	return &Prompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// NewWithStreams returns a Prompter over arbitrary streams, used in tests.
func NewWithStreams(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// Interactive reports whether prompting is possible.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Ask prints a label and returns the trimmed line the user enters. Empty
// answers are re-asked.
func (p *Prompter) Ask(label string) (string, error) {
	if !p.interactive {
		return "", ErrNotInteractive
	}
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read input: %w", err)
		}
		if answer := strings.TrimSpace(line); answer != "" {
			return answer, nil
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
	}
}

// Choose renders a numbered menu and returns the key of the selected choice.
// Entering -1 cancels.
func (p *Prompter) Choose(header string, choices []Choice) (string, error) {
	if !p.interactive {
		return "", ErrNotInteractive
	}
	if len(choices) == 0 {
		return "", errors.New("nothing to choose from")
	}

	fmt.Fprintf(p.out, "\n%s\n\n", header)
	valid := make(map[string]Choice, len(choices))
	for _, choice := range choices {
		fmt.Fprintf(p.out, "[%s] %s\n", choice.Key, choice.Label)
		valid[choice.Key] = choice
	}
	fmt.Fprintln(p.out)

	label := "Enter the library number (-1 to cancel)"
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return "", err
		}
		if answer == "-1" {
			return "", ErrCancelled
		}
		if choice, ok := valid[answer]; ok {
			fmt.Fprintf(p.out, "\nSelected %q\n\n", choice.Label)
			return choice.Key, nil
		}
		label = "Invalid selection, please try again (-1 to cancel)"
	}
}
