package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRemoveCommand creates the "remove <name>" command for a resource group.
//
// Removing a name that does not exist succeeds without doing anything.
// Removing a resource that exists but is not managed fails with
// "Docker <type> object, <name>, is not managed." and deletes nothing.
func newRemoveCommand[T any](r *resource[T]) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Remove a managed %s", r.kind),
		Args:    cobra.ExactArgs(1),
		RunE: r.app.action(func(cmd *cobra.Command, args []string) error {
			mgr, err := r.manager(cmd)
			if err != nil {
				return err
			}

			if err := mgr.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s removed.\n", r.kind.Title())
			return nil
		}),
	}
}
