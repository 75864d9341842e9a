package compose

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agentx-labs/sitefleet/internal/profile"
)

// Prompter asks the question table on a line-oriented terminal.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewPrompter reads answers from r and writes prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

// SelectProfile presents a numbered menu of the registered profiles and
// returns the chosen name.
func (p *Prompter) SelectProfile(reg *profile.Registry) (string, error) {
	profiles := reg.List()
	if len(profiles) == 0 {
		return "", errors.New("no template profiles available")
	}
	items := make([]string, len(profiles))
	for i, pr := range profiles {
		items[i] = pr.Title()
		if pr.Description != "" {
			items[i] += " - " + pr.Description
		}
	}
	idx, err := p.selectFromList("Select a template:", items)
	if err != nil {
		return "", err
	}
	return profiles[idx].Name, nil
}

// Answers asks every question, offering the profile's value (or the
// question default) when the operator presses enter. Rejected input is
// re-asked. It satisfies AnswerFunc.
func (p *Prompter) Answers(prof *profile.Profile) (Answers, error) {
	fmt.Fprintf(p.w, "\nCustomize your %s:\n", strings.ToLower(prof.Title()))

	var out Answers
	for _, q := range Questions {
		def := q.Default
		if v, ok := prof.Fragment.Get(q.Path); ok {
			if s, isString := v.Scalar().(string); isString {
				def = s
			}
		}

		for {
			if def != "" {
				fmt.Fprintf(p.w, "  %s [%s]: ", q.Label, def)
			} else {
				fmt.Fprintf(p.w, "  %s: ", q.Label)
			}
			line, readErr := p.reader.ReadString('\n')
			if readErr != nil && !errors.Is(readErr, io.EOF) {
				return nil, fmt.Errorf("reading %s: %w", q.Path, readErr)
			}
			value := strings.TrimSpace(line)
			if value == "" {
				value = def
			}
			if q.Check != nil {
				if err := q.Check(value); err != nil {
					if readErr != nil {
						return nil, &ValidationError{Field: q.Path.String(), Reason: err.Error()}
					}
					fmt.Fprintf(p.w, "    ✗ %s\n", err)
					continue
				}
			}
			out = append(out, Answer{Path: q.Path, Value: value})
			break
		}
	}
	return out, nil
}

// selectFromList presents a numbered list and returns the selected index.
// An empty line picks the first entry.
func (p *Prompter) selectFromList(prompt string, items []string) (int, error) {
	fmt.Fprintf(p.w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(p.w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(p.w, "Enter number [1-%d]: ", len(items))

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("reading selection: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", line, len(items))
	}
	return num - 1, nil
}
