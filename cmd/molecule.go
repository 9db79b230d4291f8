package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eykd/chemprog/internal/molecule"
)

// NewMoleculeCmd creates the molecule subcommand.
func NewMoleculeCmd() *cobra.Command {
	var (
		name    string
		seed    uint64
		noColor bool
	)

	cmd := &cobra.Command{
		Use:          "molecule",
		Short:        "Pick a random molecule and print where its data files and facts live",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var m molecule.Molecule
			if name != "" {
				var ok bool
				if m, ok = molecule.Lookup(name); !ok {
					return fmt.Errorf("unknown molecule %q (known: %v)", sanitizePath(name), molecule.Names())
				}
			} else {
				src := rand.NewPCG(rand.Uint64(), rand.Uint64())
				if cmd.Flags().Changed("seed") {
					src = rand.NewPCG(seed, seed)
				}
				m = molecule.Pick(rand.New(src))
			}

			colour := !noColor && !color.NoColor
			if err := molecule.Describe(cmd.OutOrStdout(), m, colour); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "describe this molecule instead of a random one")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a repeatable pick")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	return cmd
}
