package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the grammar backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := newHealthRepo(opts.cfg)
			if err != nil {
				return err
			}

			if err := repo.Check(cmd.Context()); err != nil {
				return fmt.Errorf("backend at %s is unhealthy: %w", opts.cfg.BackendUrl, err)
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ backend at %s is healthy\n", opts.cfg.BackendUrl)
			return nil
		},
	}
}
