// Package selector implements the interactive choice of one option from a
// fixed list. The choice loop is a small state machine fed one candidate
// input at a time, so it can be driven by a console or by tests alike.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"
)

// State is the position of a Selector in its choice loop.
type State int

const (
	// AwaitingInput is the initial state, before any input was fed.
	AwaitingInput State = iota
	// Matched means an input named a valid option. It is terminal.
	Matched
	// InvalidRetry means the last input matched nothing; the next input is
	// awaited.
	InvalidRetry
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting-input"
	case Matched:
		return "matched"
	case InvalidRetry:
		return "invalid-retry"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrNoOptions is returned by New for an empty option list. Callers are
	// expected to report this condition before starting a selection.
	ErrNoOptions = errors.New("no options to choose from")
	// ErrInterrupted is returned by Run when input ends before a valid
	// option was entered.
	ErrInterrupted = errors.New("input ended before a valid option was chosen")
)

// Selector tracks the choice of one option from a list.
type Selector struct {
	options  []string
	index    map[string]string
	state    State
	choice   string
	attempts int
}

// New creates a Selector over options, which keep their order for display.
// Options are matched case-insensitively; if two options differ only in case
// the first one wins.
func New(options []string) (*Selector, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	s := &Selector{
		options: append([]string(nil), options...),
		index:   make(map[string]string, len(options)),
	}
	for _, o := range options {
		key := normalize(o)
		if _, ok := s.index[key]; !ok {
			s.index[key] = o
		}
	}
	return s, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Options returns the option list in display order.
func (s *Selector) Options() []string {
	return append([]string(nil), s.options...)
}

// State returns the current state.
func (s *Selector) State() State {
	return s.state
}

// Attempts returns how many inputs have been fed so far.
func (s *Selector) Attempts() int {
	return s.attempts
}

// Choice returns the canonical form of the matched option.
func (s *Selector) Choice() (string, bool) {
	return s.choice, s.state == Matched
}

// Feed offers one candidate input and returns the resulting state. Once
// Matched, further input is ignored.
func (s *Selector) Feed(input string) State {
	if s.state == Matched {
		return s.state
	}
	s.attempts++
	if canonical, ok := s.index[normalize(input)]; ok {
		s.choice = canonical
		s.state = Matched
		return s.state
	}
	s.state = InvalidRetry
	return s.state
}

// Suggest returns the option closest to input by edit distance, if any is
// close enough to be a plausible typo.
func (s *Selector) Suggest(input string) (string, bool) {
	in := normalize(input)
	if in == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, o := range s.options {
		key := normalize(o)
		dist := levenshtein.ComputeDistance(in, key)
		if strings.HasPrefix(key, in) && len(in) >= 2 {
			dist = 0
		} else if dist > levenshteinLimit(len(key)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = o, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Run prints the enumerated options to out, then reads one line per attempt
// from in until a valid option is entered, re-prompting after every invalid
// one. label names the attribute being chosen, e.g. "skin type". Running out
// of input returns ErrInterrupted.
func (s *Selector) Run(in io.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprintf(out, "Available %s options:\n", label)
	for i, o := range s.options {
		_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, o)
	}

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprintf(out, "Enter a %s: ", label)
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", ErrInterrupted
		}
		input := scanner.Text()
		if s.Feed(input) == Matched {
			return s.choice, nil
		}
		if hint, ok := s.Suggest(input); ok {
			_, _ = fmt.Fprintf(out, "%q is not a valid %s. Did you mean %q?\n", strings.TrimSpace(input), label, hint)
		} else {
			_, _ = fmt.Fprintf(out, "%q is not a valid %s. Please choose from the list above.\n", strings.TrimSpace(input), label)
		}
	}
}

// Prompt is a convenience wrapper creating a Selector over options and
// running it.
func Prompt(in io.Reader, out io.Writer, label string, options []string) (string, error) {
	s, err := New(options)
	if err != nil {
		return "", err
	}
	return s.Run(in, out, label)
}
