// Package pseudocode renders block-structured pseudocode from a table of
// numbered steps and an emission order.
package pseudocode

import (
	"errors"
	"fmt"
)

// StepTable maps a step identifier to one line of pseudocode text.
type StepTable map[int]string

// StepOrder lists step identifiers in the order they are emitted.
type StepOrder []int

const (
	// IndentWidth is the number of columns one nesting level occupies.
	IndentWidth = 4
	// ContinueMarker forces an extra dedent wherever it appears in a line.
	ContinueMarker = "CONTINUE"
	// ContinueDedent is the extra dedent applied by ContinueMarker (two levels).
	ContinueDedent = 2 * IndentWidth
)

// NegativeIndentPolicy decides what happens when a dedent would take the
// indent below zero.
type NegativeIndentPolicy string

const (
	// ClampNegative resets the indent to zero whenever it would go negative.
	ClampNegative NegativeIndentPolicy = "clamp"
	// CarryNegative keeps the negative value for later arithmetic and emits
	// no prefix while it stays below zero.
	CarryNegative NegativeIndentPolicy = "carry"
)

// ParseNegativeIndentPolicy converts a flag or config value into a policy.
// The empty string selects ClampNegative.
func ParseNegativeIndentPolicy(s string) (NegativeIndentPolicy, error) {
	switch NegativeIndentPolicy(s) {
	case "", ClampNegative:
		return ClampNegative, nil
	case CarryNegative:
		return CarryNegative, nil
	}
	return "", fmt.Errorf("unknown negative indent policy %q (want %q or %q)", s, ClampNegative, CarryNegative)
}

// ErrUnknownStep is matched by every LookupError.
var ErrUnknownStep = errors.New("unknown step")

// ErrEmptyOrder is returned when there is nothing to emit.
var ErrEmptyOrder = errors.New("step order is empty")

// LookupError reports an order entry with no matching step.
type LookupError struct {
	// Position is the zero-based index into the order.
	Position int
	// ID is the identifier that could not be resolved.
	ID int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("order[%d]: step %d not found", e.Position, e.ID)
}

// Is lets errors.Is(err, ErrUnknownStep) match any LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrUnknownStep
}

// Emitted is one rendered line together with the indent it was emitted at and
// the indent in effect for the following line.
type Emitted struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	Indent     int    `json:"indent"`
	NextIndent int    `json:"nextIndent"`
}

// Code identifies a specific check rule.
type Code string

const (
	// PSE001 indicates the order references a step id that is not in the table.
	PSE001 Code = "PSE001"
	// PSE002 indicates the order is empty, so nothing would be emitted.
	PSE002 Code = "PSE002"
	// PSW001 indicates a dedent would take the indent below zero.
	PSW001 Code = "PSW001"
	// PSW002 indicates the indent is not zero after the last line (unclosed block).
	PSW002 Code = "PSW002"
	// PSW003 indicates a step in the table is never referenced by the order.
	PSW003 Code = "PSW003"
	// PSW004 indicates an emitted line is wider than the configured maximum display width.
	PSW004 Code = "PSW004"
)

// Severity classifies the impact level of a diagnostic.
type Severity string

const (
	// SeverityError indicates the document cannot be formatted.
	SeverityError Severity = "error"
	// SeverityWarning indicates the document formats but should be reviewed.
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single finding produced by Check.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	// Position is the zero-based order index the finding refers to, or -1
	// when it concerns the document as a whole.
	Position int `json:"position"`
}

// HasErrors reports whether any diagnostic in diags has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
