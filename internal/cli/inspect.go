package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newInspectCommand creates the "inspect <name>" command for a resource
// group. Unlike remove, a missing resource is an error here.
func newInspectCommand[T any](r *resource[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <name>",
		Short: fmt.Sprintf("Show details of a managed %s", r.kind),
		Args:  cobra.ExactArgs(1),
		RunE: r.app.action(func(cmd *cobra.Command, args []string) error {
			mgr, err := r.manager(cmd)
			if err != nil {
				return err
			}

			item, err := mgr.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderDetails(cmd.OutOrStdout(), r.format(), item, r.details(item))
		}),
	}
}
