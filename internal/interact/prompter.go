// Package interact asks the operator one question at a time over a reader
// and writer pair. Invalid answers are re-asked; end of input cancels.
package interact

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrCancelled is returned when input ends or the operator skips a choice.
var ErrCancelled = errors.New("cancelled")

// SelectionParser turns free-form input into zero-based indices for n
// options, returning the tokens it could not use.
type SelectionParser func(input string, n int) (indices []int, invalid []string)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// readLine returns the next trimmed line. A final line without a newline
// is still returned; nothing left is ErrCancelled.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Ask reads free text. Empty input returns def.
func (p *Prompter) Ask(question, def string) (string, error) {
	if def != "" {
		p.printf("%s [%s]: ", question, def)
	} else {
		p.printf("%s: ", question)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Empty input returns def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	suffix := "y/N"
	if def {
		suffix = "Y/n"
	}
	for {
		p.printf("%s [%s]: ", question, suffix)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.printf("Please answer y or n.\n")
	}
}

func (p *Prompter) list(title string, options []string) {
	if title != "" {
		p.printf("%s\n", title)
	}
	for i, opt := range options {
		p.printf("  %d. %s\n", i+1, opt)
	}
}

// Choose lists options and returns the zero-based index picked. Empty
// input is ErrCancelled.
func (p *Prompter) Choose(title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, ErrCancelled
	}
	p.list(title, options)
	for {
		p.printf("Select [1-%d] (Enter to cancel): ", len(options))
		answer, err := p.readLine()
		if err != nil {
			return -1, err
		}
		if answer == "" {
			return -1, ErrCancelled
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		p.printf("Invalid selection %q.\n", answer)
	}
}

// ChooseMany lists options and returns the indices parse accepts. Empty
// input selects nothing. Input with no usable token is re-asked.
func (p *Prompter) ChooseMany(title string, options []string, parse SelectionParser) ([]int, error) {
	p.list(title, options)
	for {
		p.printf("Select one or more (e.g. 1,3 or all; Enter to skip): ")
		answer, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		indices, invalid := parse(answer, len(options))
		if len(invalid) > 0 {
			p.printf("Ignoring invalid selection: %s\n", strings.Join(invalid, ", "))
		}
		if len(indices) > 0 {
			return indices, nil
		}
	}
}
