package pseudocode

import (
	"strings"
)

type options struct {
	policy   NegativeIndentPolicy
	maxWidth int
}

// Option configures Format, Trace and Check.
type Option func(*options)

// WithNegativeIndent selects how an indent below zero is handled.
func WithNegativeIndent(p NegativeIndentPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithMaxWidth enables the PSW004 display-width check in Check. Zero disables it.
func WithMaxWidth(n int) Option {
	return func(o *options) { o.maxWidth = n }
}

func buildOptions(opts []Option) options {
	o := options{policy: ClampNegative}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Format renders the steps named by order, one per line, each prefixed by
// its nesting indent and terminated by a newline.
//
// A line ending in ':' opens a block for the lines after it. A line ending in
// k dots closes k blocks. A line containing CONTINUE closes two further blocks.
// The line carrying the punctuation is itself emitted at the indent in effect
// before it.
//
// The whole order is resolved before anything is rendered: when an id is
// missing Format returns "" and a *LookupError for the first missing id.
func Format(steps StepTable, order StepOrder, opts ...Option) (string, error) {
	lines, err := Trace(steps, order, opts...)
	if err != nil {
		return "", err
	}
	return Render(lines), nil
}

// Render writes traced lines as text. A negative indent prints no prefix.
func Render(lines []Emitted) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat(" ", max(l.Indent, 0)))
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Trace resolves order against steps and returns every emitted line with the
// indent it is printed at and the indent that follows it.
func Trace(steps StepTable, order StepOrder, opts ...Option) ([]Emitted, error) {
	if len(order) == 0 {
		return nil, ErrEmptyOrder
	}
	for i, id := range order {
		if _, ok := steps[id]; !ok {
			return nil, &LookupError{Position: i, ID: id}
		}
	}

	o := buildOptions(opts)
	out := make([]Emitted, 0, len(order))
	indent := 0
	for _, id := range order {
		line := steps[id]
		next, _ := advance(indent, line, o.policy)
		out = append(out, Emitted{ID: id, Text: line, Indent: indent, NextIndent: next})
		indent = next
	}
	return out, nil
}

// advance returns the indent that follows line when line is emitted at
// indent. The second result reports whether this line's dedent took the raw
// value below zero, regardless of policy.
func advance(indent int, line string, policy NegativeIndentPolicy) (int, bool) {
	delta := 0
	switch {
	case strings.HasSuffix(line, ":"):
		delta += IndentWidth
	case strings.HasSuffix(line, "."):
		delta -= IndentWidth * trailingDots(line)
	}
	if strings.Contains(line, ContinueMarker) {
		delta -= ContinueDedent
	}
	next := indent + delta
	if next >= 0 {
		return next, false
	}
	if policy == CarryNegative {
		return next, delta < 0
	}
	return 0, true
}

func trailingDots(line string) int {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '.'; i-- {
		n++
	}
	return n
}
