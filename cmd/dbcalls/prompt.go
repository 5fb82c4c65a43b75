package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"dbcalls/internal/errors"
	"dbcalls/internal/rules"
)

const (
	menuHeader    = "Select the analysis to run:"
	menuPrompt    = "Option: "
	pathPrompt    = "Enter the path of the project folder: "
	invalidOption = "Invalid option."
)

// Prompter asks the interactive questions of the scan command. Both
// questions share one reader so buffered input is not lost between them.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter.
func NewPrompter(in *bufio.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// AskMode prints the analysis menu and reads the choice. Unrecognised input
// yields rules.ModeInvalid, not an error.
func (p *Prompter) AskMode() (rules.Mode, error) {
	writeln(p.out, menuHeader)
	for _, m := range rules.Modes() {
		_, _ = fmt.Fprintf(p.out, "  %s) %s\n", m, m.Description())
	}
	_, _ = io.WriteString(p.out, menuPrompt)

	line, err := p.readLine()
	if err != nil {
		return rules.ModeInvalid, err
	}
	return rules.ParseMode(line), nil
}

// AskPath prompts for the project folder.
func (p *Prompter) AskPath() (string, error) {
	_, _ = io.WriteString(p.out, pathPrompt)

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return "", errors.NewScanError(errors.InvalidInput, "no project folder given", nil, errors.GetSuggestedFixes(errors.InvalidInput))
	}
	return line, nil
}

// readLine reads one trimmed line. End of input after a partial line is not
// an error; end of input with nothing read yields "".
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(errors.InvalidInput, err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}
