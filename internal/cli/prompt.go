package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/validation"
)

// Prompter reads answers to interactive questions line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// ReadLine prints prompt and returns the next line without its line ending.
// It returns io.EOF once input is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question. Only "y" or "yes" confirm.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.ReadLine(prompt + " (y/n) ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ReadID reads a film ID such as "7" or "#7".
func (p *Prompter) ReadID(prompt string) (int, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	id, err := model.ParseID(line)
	if err != nil {
		return 0, &ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a film id", strings.TrimSpace(line))}
	}
	return id, nil
}

// ReadYear asks for a release year until a valid one is given.
func (p *Prompter) ReadYear(prompt string) (int, error) {
	year, err := p.readYear(prompt, false)
	if err != nil {
		return 0, err
	}
	return *year, nil
}

// ReadOptionalYear is ReadYear that also accepts blank input, returning nil
// so the caller keeps its current value unchecked.
func (p *Prompter) ReadOptionalYear(prompt string) (*int, error) {
	return p.readYear(prompt, true)
}

func (p *Prompter) readYear(prompt string, allowBlank bool) (*int, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)

		if line == "" && allowBlank {
			return nil, nil
		}
		if year, err := strconv.Atoi(line); err == nil && validation.ValidFilmYear(year) {
			return &year, nil
		}

		msg := fmt.Sprintf("Invalid year. Please enter a year between %d and %d", validation.MinFilmYear, validation.MaxFilmYear())
		if allowBlank {
			msg += " or leave blank"
		}
		fmt.Fprintln(p.out, Yellow(msg+"."))
	}
}
