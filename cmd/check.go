package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/chemprog/internal/pseudocode"
)

// checkOutput is the JSON output schema for the check command.
type checkOutput struct {
	Version     string                  `json:"version"`
	Diagnostics []pseudocode.Diagnostic `json:"diagnostics"`
}

// NewCheckCmd creates the check subcommand.
func NewCheckCmd(io DocumentIO) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check <steps-file>",
		Short:        "Lint a step document without printing it",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode, _ := cmd.Flags().GetBool("json")

			doc, opts, err := loadStepDocument(cmd, io, args[0])
			if err != nil {
				return err
			}

			diags := pseudocode.Check(doc.Steps, doc.Order, opts...)
			if diags == nil {
				diags = []pseudocode.Diagnostic{}
			}

			if jsonMode {
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(checkOutput{Version: "1", Diagnostics: diags}); err != nil {
					return fmt.Errorf("encoding output: %w", err)
				}
			} else {
				printDiagnostics(cmd, diags)
				if len(diags) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "ok: %d steps, %d lines\n", len(doc.Steps), len(doc.Order))
				}
			}

			if pseudocode.HasErrors(diags) {
				return fmt.Errorf("%s has errors", sanitizePath(args[0]))
			}
			return nil
		},
	}

	addDocumentFlags(cmd)
	return cmd
}
