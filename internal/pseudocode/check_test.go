package pseudocode_test

import (
	"testing"

	"github.com/eykd/chemprog/internal/pseudocode"
)

func codesOf(diags []pseudocode.Diagnostic) map[pseudocode.Code]int {
	m := make(map[pseudocode.Code]int)
	for _, d := range diags {
		m[d.Code]++
	}
	return m
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		steps     pseudocode.StepTable
		order     pseudocode.StepOrder
		opts      []pseudocode.Option
		wantCodes map[pseudocode.Code]int
	}{
		{
			name:      "balanced document is clean",
			steps:     pseudocode.StepTable{0: "FOR each x:", 1: "print(x)."},
			order:     pseudocode.StepOrder{0, 1},
			wantCodes: map[pseudocode.Code]int{},
		},
		{
			name:      "every unknown id is reported",
			steps:     pseudocode.StepTable{0: "a"},
			order:     pseudocode.StepOrder{0, 5, 6},
			wantCodes: map[pseudocode.Code]int{pseudocode.PSE001: 2},
		},
		{
			name:      "empty order",
			steps:     pseudocode.StepTable{0: "a"},
			order:     pseudocode.StepOrder{},
			wantCodes: map[pseudocode.Code]int{pseudocode.PSE002: 1, pseudocode.PSW003: 1},
		},
		{
			name:      "dedent below zero",
			steps:     pseudocode.StepTable{0: "done.."},
			order:     pseudocode.StepOrder{0},
			wantCodes: map[pseudocode.Code]int{pseudocode.PSW001: 1},
		},
		{
			name:      "carry reports the crossing and the final deficit",
			steps:     pseudocode.StepTable{0: "done..", 1: "more"},
			order:     pseudocode.StepOrder{0, 1},
			opts:      []pseudocode.Option{pseudocode.WithNegativeIndent(pseudocode.CarryNegative)},
			wantCodes: map[pseudocode.Code]int{pseudocode.PSW001: 1, pseudocode.PSW002: 1},
		},
		{
			name:      "open block at end",
			steps:     pseudocode.StepTable{0: "FOR each spectrum:", 1: "fit background"},
			order:     pseudocode.StepOrder{0, 1},
			wantCodes: map[pseudocode.Code]int{pseudocode.PSW002: 1},
		},
		{
			name:      "unreferenced steps",
			steps:     pseudocode.StepTable{0: "a", 1: "b", 2: "c"},
			order:     pseudocode.StepOrder{1},
			wantCodes: map[pseudocode.Code]int{pseudocode.PSW003: 2},
		},
		{
			name:      "width counts the indent",
			steps:     pseudocode.StepTable{0: "IF x:", 1: "123456"},
			order:     pseudocode.StepOrder{0, 1, 0},
			opts:      []pseudocode.Option{pseudocode.WithMaxWidth(8)},
			wantCodes: map[pseudocode.Code]int{pseudocode.PSW002: 1, pseudocode.PSW004: 2},
		},
		{
			name:      "wide glyphs count double",
			steps:     pseudocode.StepTable{0: "测量光谱"},
			order:     pseudocode.StepOrder{0},
			opts:      []pseudocode.Option{pseudocode.WithMaxWidth(6)},
			wantCodes: map[pseudocode.Code]int{pseudocode.PSW004: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := pseudocode.Check(tt.steps, tt.order, tt.opts...)
			got := codesOf(diags)
			if len(got) != len(tt.wantCodes) {
				t.Errorf("Check() codes = %v, want %v", got, tt.wantCodes)
			}
			for code, n := range tt.wantCodes {
				if got[code] != n {
					t.Errorf("Check() %s count = %d, want %d; diags=%v", code, got[code], n, diags)
				}
			}
		})
	}
}

func TestCheck_Severities(t *testing.T) {
	diags := pseudocode.Check(pseudocode.StepTable{0: "x", 1: "IF y:"}, pseudocode.StepOrder{1, 3})
	for _, d := range diags {
		switch d.Code {
		case pseudocode.PSE001, pseudocode.PSE002:
			if d.Severity != pseudocode.SeverityError {
				t.Errorf("%s severity = %q, want error", d.Code, d.Severity)
			}
		default:
			if d.Severity != pseudocode.SeverityWarning {
				t.Errorf("%s severity = %q, want warning", d.Code, d.Severity)
			}
		}
	}
	if !pseudocode.HasErrors(diags) {
		t.Errorf("HasErrors() = false, want true; diags=%v", diags)
	}
}

func TestCheck_UnknownStepPosition(t *testing.T) {
	diags := pseudocode.Check(pseudocode.StepTable{0: "x"}, pseudocode.StepOrder{0, 0, 4})
	for _, d := range diags {
		if d.Code == pseudocode.PSE001 {
			if d.Position != 2 {
				t.Errorf("PSE001 position = %d, want 2", d.Position)
			}
			return
		}
	}
	t.Errorf("no PSE001 diagnostic; got %v", diags)
}

func TestHasErrors_WarningsOnly(t *testing.T) {
	diags := []pseudocode.Diagnostic{{Severity: pseudocode.SeverityWarning, Code: pseudocode.PSW003}}
	if pseudocode.HasErrors(diags) {
		t.Error("HasErrors() = true for warnings only")
	}
}
