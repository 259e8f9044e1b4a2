package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCreateCommand creates the "create <name>" command for a resource group.
func newCreateCommand[T any](r *resource[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: fmt.Sprintf("Create a new managed %s", r.kind),
		Args:  cobra.ExactArgs(1),
		RunE: r.app.action(func(cmd *cobra.Command, args []string) error {
			mgr, err := r.manager(cmd)
			if err != nil {
				return err
			}

			if err := mgr.Create(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s created.\n", r.kind.Title())
			return nil
		}),
	}
}
