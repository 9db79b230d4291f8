// Package cmd implements the chemprog CLI commands.
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eykd/chemprog/internal/pseudocode"
)

// NewRootCmd creates the root chemprog command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chemprog",
		Short:         "chemprog - helpers for the Introduction to Programming for Chemistry course",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	root.AddCommand(NewPseudoCmd(newDefaultDocumentIO()))
	root.AddCommand(NewCheckCmd(newDefaultDocumentIO()))
	root.AddCommand(NewInitCmd(newDefaultInitIO()))
	root.AddCommand(NewMentiCmd())
	root.AddCommand(NewMoleculeCmd())
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

var severityColors = map[pseudocode.Severity]*color.Color{
	pseudocode.SeverityError:   color.New(color.FgRed, color.Bold),
	pseudocode.SeverityWarning: color.New(color.FgYellow),
}

// printDiagnostics writes each diagnostic to stderr in human-readable form.
func printDiagnostics(cmd *cobra.Command, diags []pseudocode.Diagnostic) {
	w := cmd.ErrOrStderr()
	for _, d := range diags {
		sev := string(d.Severity)
		if c, ok := severityColors[d.Severity]; ok {
			sev = c.Sprint(sev)
		}
		fmt.Fprintf(w, "%s: %s (%s)\n", sev, d.Message, d.Code)
	}
}
