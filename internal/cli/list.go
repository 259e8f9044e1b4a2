package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListCommand creates the "list" command for a resource group.
// Only resources carrying the managed label are shown.
func newListCommand[T any](r *resource[T]) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List the managed %ss", r.kind),
		Args:    cobra.NoArgs,
		RunE: r.app.action(func(cmd *cobra.Command, args []string) error {
			mgr, err := r.manager(cmd)
			if err != nil {
				return err
			}

			items, err := mgr.List(cmd.Context())
			if err != nil {
				return err
			}
			r.app.log.Info().Int("count", len(items)).Msgf("found managed %ss", r.kind)

			// Non-nil so JSON renders [] rather than null.
			rows := make([]listRow, 0, len(items))
			for _, item := range items {
				rows = append(rows, r.row(item))
			}

			return renderList(cmd.OutOrStdout(), r.format(), rows)
		}),
	}
}
