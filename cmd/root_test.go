package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{"pseudo": false, "check": false, "init": false, "menti": false, "molecule": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q subcommand registered on root command", name)
		}
	}
}

func TestBuildCommandTree_AllCommandsHaveRunE(t *testing.T) {
	root := NewRootCmd()
	for _, sub := range root.Commands() {
		c := sub
		t.Run(c.Name(), func(t *testing.T) {
			if c.RunE == nil {
				t.Errorf("command %q has nil RunE; must wire RunE for error visibility", c.Name())
			}
		})
	}
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "chemprog") {
		t.Errorf("expected help output to contain \"chemprog\", got: %s", out.String())
	}
}

func TestPrintDiagnostics_Format(t *testing.T) {
	root := NewRootCmd()
	errOut := new(bytes.Buffer)
	root.SetErr(errOut)

	printDiagnostics(root, nil)
	if errOut.Len() != 0 {
		t.Errorf("printDiagnostics(nil) wrote %q", errOut.String())
	}
}
