package pseudocode

import (
	"fmt"
	"sort"

	"github.com/mattn/go-runewidth"
)

// Check lints steps and order without stopping at the first problem.
// It returns nil when the document is clean.
func Check(steps StepTable, order StepOrder, opts ...Option) []Diagnostic {
	o := buildOptions(opts)
	var diags []Diagnostic

	if len(order) == 0 {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Code:     PSE002,
			Message:  "step order is empty; nothing to emit",
			Position: -1,
		})
	}

	used := make(map[int]bool, len(order))
	indent := 0
	for i, id := range order {
		line, ok := steps[id]
		if !ok {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Code:     PSE001,
				Message:  fmt.Sprintf("order[%d] references unknown step %d", i, id),
				Position: i,
			})
			continue
		}
		used[id] = true

		if o.maxWidth > 0 {
			if w := max(indent, 0) + runewidth.StringWidth(line); w > o.maxWidth {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Code:     PSW004,
					Message:  fmt.Sprintf("step %d is %d columns wide (max %d)", id, w, o.maxWidth),
					Position: i,
				})
			}
		}

		next, negative := advance(indent, line, o.policy)
		if negative {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     PSW001,
				Message:  fmt.Sprintf("step %d dedents below zero (%s)", id, o.policy),
				Position: i,
			})
		}
		indent = next
	}

	if len(order) > 0 && indent != 0 {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     PSW002,
			Message:  fmt.Sprintf("indent is %d after the last step, want 0", indent),
			Position: len(order) - 1,
		})
	}

	var unused []int
	for id := range steps {
		if !used[id] {
			unused = append(unused, id)
		}
	}
	sort.Ints(unused)
	for _, id := range unused {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     PSW003,
			Message:  fmt.Sprintf("step %d is never referenced by the order", id),
			Position: -1,
		})
	}

	return diags
}
