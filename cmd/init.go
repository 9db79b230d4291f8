package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eykd/chemprog/internal/pseudocode"
)

// InitIO handles I/O for the init command.
type InitIO interface {
	StatFile(path string) (bool, error)
	WriteFileAtomic(path, content string) error
}

// exampleDocument is the step document written by init.
var exampleDocument = pseudocode.Document{
	Title: "Finding alcohols",
	Steps: pseudocode.StepTable{
		0: "FOR each spectrum:",
		1: "Find absorption for 2600 < nu < 3500",
		2: "fit background",
		3: "IF absorption - background > threshold:",
		4: "assign as alcohol..",
		5: "report alcohols",
	},
	Order: pseudocode.StepOrder{0, 1, 2, 3, 4, 5},
}

const configContent = "# chemprog project configuration\nnegativeIndent: clamp\nmaxWidth: 0\n"

// NewInitCmd creates the init subcommand.
func NewInitCmd(io InitIO) *cobra.Command {
	return newInitCmdWithGetCWD(io, os.Getwd)
}

func newInitCmdWithGetCWD(io InitIO, getwd func() (string, error)) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Create an example steps.yml and " + configFileName + " in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			if project == "" {
				cwd, err := getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				project = cwd
			}

			stepsPath := filepath.Join(project, "steps.yml")
			configPath := filepath.Join(project, configFileName)

			stepsExists, err := io.StatFile(stepsPath)
			if err != nil {
				return fmt.Errorf("checking %s: %w", sanitizePath(stepsPath), err)
			}
			if stepsExists && !force {
				return fmt.Errorf("steps.yml already exists in %s; use --force to overwrite", sanitizePath(project))
			}

			needsWarning := force && stepsExists

			stepsContent, err := exampleDocument.EncodeYAML()
			if err != nil {
				return err
			}
			if err := io.WriteFileAtomic(stepsPath, string(stepsContent)); err != nil {
				return fmt.Errorf("writing steps.yml: %w", err)
			}

			configExists, err := io.StatFile(configPath)
			if err != nil {
				return fmt.Errorf("checking %s: %w", sanitizePath(configPath), err)
			}

			needsWarning = needsWarning || (force && configExists)

			if !configExists || force {
				if err := io.WriteFileAtomic(configPath, configContent); err != nil {
					return fmt.Errorf(
						"writing %s (partial init; re-run with --force to recover): %w", configFileName, err)
				}
			}

			if needsWarning {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: overwriting existing files")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Initialized "+sanitizePath(project))
			return nil
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

// fileInitIO implements InitIO using OS file I/O.
type fileInitIO struct{}

func newDefaultInitIO() *fileInitIO {
	return &fileInitIO{}
}

// StatFile returns true if the file at path exists, false if it does not.
// Returns an error only for unexpected OS errors.
func (f *fileInitIO) StatFile(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// WriteFileAtomic writes content to path via a 0600 temp file and rename.
func (f *fileInitIO) WriteFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".init-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write([]byte(content)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
