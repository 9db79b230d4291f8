package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eykd/chemprog/internal/pseudocode"
)

// DocumentIO reads step documents and project configuration for the pseudo
// and check commands.
type DocumentIO interface {
	ReadDocument(ctx context.Context, path string) ([]byte, error)
	// ReadConfig reports exists=false without error when path is absent.
	ReadConfig(ctx context.Context, path string) (data []byte, exists bool, err error)
}

// pseudoOutput is the JSON output schema for the pseudo command.
type pseudoOutput struct {
	Version     string                  `json:"version"`
	Title       string                  `json:"title,omitempty"`
	Text        string                  `json:"text"`
	Lines       []pseudocode.Emitted    `json:"lines"`
	Diagnostics []pseudocode.Diagnostic `json:"diagnostics"`
}

// NewPseudoCmd creates the pseudo subcommand.
func NewPseudoCmd(io DocumentIO) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "pseudo <steps-file>",
		Short:        "Print a step document as indented pseudocode",
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

			lines, traceErr := pseudocode.Trace(doc.Steps, doc.Order, opts...)
			if traceErr != nil {
				if jsonMode {
					out := pseudoOutput{Version: "1", Title: doc.Title, Lines: []pseudocode.Emitted{}, Diagnostics: diags}
					_ = json.NewEncoder(cmd.OutOrStdout()).Encode(out)
				} else {
					printDiagnostics(cmd, diags)
				}
				return fmt.Errorf("formatting %s: %w", sanitizePath(args[0]), traceErr)
			}
			text := pseudocode.Render(lines)

			if jsonMode {
				out := pseudoOutput{Version: "1", Title: doc.Title, Text: text, Lines: lines, Diagnostics: diags}
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(out); err != nil {
					return fmt.Errorf("encoding output: %w", err)
				}
				return nil
			}

			if _, err := fmt.Fprint(cmd.OutOrStdout(), text); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			printDiagnostics(cmd, diags)
			return nil
		},
	}

	addDocumentFlags(cmd)
	return cmd
}

func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().String("order", "", "comma-separated step ids overriding the document order")
	cmd.Flags().String("negative-indent", string(pseudocode.ClampNegative), "negative indent policy: clamp or carry")
	cmd.Flags().Int("max-width", 0, "warn when a rendered line is wider than this (0 disables)")
	cmd.Flags().String("config", "", "project config file (default: "+configFileName+" beside the steps file)")
	cmd.Flags().Bool("json", false, "output result as JSON")
}

// loadStepDocument reads and decodes the step document at path, applies an
// --order override and resolves formatting options from config and flags.
func loadStepDocument(cmd *cobra.Command, io DocumentIO, path string) (*pseudocode.Document, []pseudocode.Option, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := pseudocode.FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}

	data, err := io.ReadDocument(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", sanitizePath(path), err)
	}

	doc, err := pseudocode.ParseDocument(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", sanitizePath(path), err)
	}

	if orderFlag, _ := cmd.Flags().GetString("order"); orderFlag != "" {
		order, err := pseudocode.ParseOrder(orderFlag)
		if err != nil {
			return nil, nil, fmt.Errorf("--order: %w", err)
		}
		doc.Order = order
	}

	cfg, err := loadProjectConfig(ctx, io, cmd, path)
	if err != nil {
		return nil, nil, err
	}
	opts, err := formatOptions(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	return doc, opts, nil
}

// fileDocumentIO implements DocumentIO using OS file I/O.
type fileDocumentIO struct{}

func newDefaultDocumentIO() *fileDocumentIO {
	return &fileDocumentIO{}
}

func (f *fileDocumentIO) ReadDocument(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *fileDocumentIO) ReadConfig(_ context.Context, path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
