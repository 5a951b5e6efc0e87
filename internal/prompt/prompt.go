// Package prompt provides the interactive questions ez asks before generating.
//
// A Prompter reads answers line by line from its reader and writes styled
// questions to its writer, so the same code drives a terminal session and
// a scripted test.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// ErrNoInput is returned by Select when input ends before a valid choice is made
// and there is no default to fall back on.
var ErrNoInput = errors.New("no input")

// Prompter asks questions on a terminal-like stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading from r and writing to w.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// readLine returns the trimmed next line. io.EOF is only reported when
// nothing at all was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Input asks for free text with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	module := p.Input("Enter module name", "Customer")
//	// Displays: Enter module name (Customer): _
func (p *Prompter) Input(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	input, err := p.readLine()
	if err != nil || input == "" {
		return defaultValue
	}
	return input
}

// Confirm asks a yes/no question.
// Returns true if the user answers y/yes, the default on empty input.
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	input, err := p.readLine()
	if err != nil {
		return defaultYes
	}

	input = strings.ToLower(input)
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

// Select shows a numbered list of choices and returns the chosen one.
// Empty input selects defaultValue when it is set. Invalid input re-prompts.
//
// Example:
//
//	stack, err := p.Select("Select tech stack", []string{"netcore", "nestjs", "nano"}, "netcore")
//	// 1. netcore
//	// 2. nestjs
//	// 3. nano
//	// Select an option (1-3) [netcore]: _
func (p *Prompter) Select(message string, choices []string, defaultValue string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("no choices for %q", message)
	}

	for {
		fmt.Fprintln(p.out, promptStyle.Render(message))
		for i, choice := range choices {
			fmt.Fprintf(p.out, "%d. %s\n", i+1, choice)
		}

		hint := fmt.Sprintf("Select an option (1-%d)", len(choices))
		if defaultValue != "" {
			hint += " " + hintStyle.Render(fmt.Sprintf("[%s]", defaultValue))
		}
		fmt.Fprint(p.out, hint+": ")

		input, err := p.readLine()
		if err != nil {
			if defaultValue != "" {
				return defaultValue, nil
			}
			return "", ErrNoInput
		}

		if input == "" && defaultValue != "" {
			return defaultValue, nil
		}

		if n, convErr := strconv.Atoi(input); convErr == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}

		fmt.Fprintln(p.out, errorStyle.Render("Invalid selection. Please choose a valid option."))
	}
}
