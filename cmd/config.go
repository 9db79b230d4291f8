package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eykd/chemprog/internal/pseudocode"
)

// configFileName is looked up next to the step document when --config is not given.
const configFileName = ".chemprog.yml"

// projectConfig is the optional .chemprog.yml project configuration.
type projectConfig struct {
	NegativeIndent string `yaml:"negativeIndent"`
	MaxWidth       int    `yaml:"maxWidth"`
}

func parseProjectConfig(data []byte) (projectConfig, error) {
	var cfg projectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return projectConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MaxWidth < 0 {
		return projectConfig{}, fmt.Errorf("parse config: maxWidth must not be negative, got %d", cfg.MaxWidth)
	}
	return cfg, nil
}

// loadProjectConfig reads the config named by --config, or the default file
// beside docPath. A missing default file yields the zero config; a missing
// explicit file is an error.
func loadProjectConfig(ctx context.Context, io DocumentIO, cmd *cobra.Command, docPath string) (projectConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(filepath.Dir(docPath), configFileName)
	}

	data, exists, err := io.ReadConfig(ctx, path)
	if err != nil {
		return projectConfig{}, fmt.Errorf("reading config %s: %w", sanitizePath(path), err)
	}
	if !exists {
		if explicit {
			return projectConfig{}, fmt.Errorf("config file %s does not exist", sanitizePath(path))
		}
		return projectConfig{}, nil
	}
	cfg, err := parseProjectConfig(data)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: %w", sanitizePath(path), err)
	}
	return cfg, nil
}

// formatOptions merges config values with flags; flags set on the command
// line win.
func formatOptions(cmd *cobra.Command, cfg projectConfig) ([]pseudocode.Option, error) {
	policyName := cfg.NegativeIndent
	if cmd.Flags().Changed("negative-indent") {
		policyName, _ = cmd.Flags().GetString("negative-indent")
	}
	policy, err := pseudocode.ParseNegativeIndentPolicy(policyName)
	if err != nil {
		return nil, err
	}

	maxWidth := cfg.MaxWidth
	if cmd.Flags().Changed("max-width") {
		maxWidth, _ = cmd.Flags().GetInt("max-width")
	}
	if maxWidth < 0 {
		return nil, fmt.Errorf("--max-width must not be negative, got %d", maxWidth)
	}

	return []pseudocode.Option{
		pseudocode.WithNegativeIndent(policy),
		pseudocode.WithMaxWidth(maxWidth),
	}, nil
}
