package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/chemprog/internal/mentimeter"
)

// NewMentiCmd creates the menti subcommand.
func NewMentiCmd() *cobra.Command {
	var embed mentimeter.Embed

	cmd := &cobra.Command{
		Use:          "menti",
		Short:        "Print HTML embedding a Mentimeter vote and/or results page",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if embed.Empty() {
				return errors.New("at least one of --vote or --result is required")
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), embed.HTML()); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&embed.Vote, "vote", "", "voting page URL")
	cmd.Flags().StringVar(&embed.Result, "result", "", "results page URL")

	return cmd
}
