package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kherge/dev/internal/docker"
	"github.com/kherge/dev/internal/model"
)

// newNetworkCommand creates the "network" command group.
func newNetworkCommand(a *app) *cobra.Command {
	r := &resource[model.Network]{
		app:  a,
		kind: model.KindNetwork,
		newManager: func(api docker.EngineAPI, log zerolog.Logger) resourceManager[model.Network] {
			return docker.NewNetworkManager(api, log)
		},
		row: func(n model.Network) listRow {
			return listRow{Name: n.Name, CreatedAt: n.CreatedAt}
		},
		details: func(n model.Network) []field {
			return []field{
				{"Name", n.Name},
				{"ID", n.ID},
				{"Driver", n.Driver},
				{"Scope", n.Scope},
				{"Created At", n.CreatedAt},
				{"Labels", formatLabels(n.Labels)},
			}
		},
	}

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Manage networks",
		Long: `Manage networks.

Networks provide Internet access to containers and let the host reach
services running in containers attached to them. Managed networks use the
"host" driver in global scope, so no port mapping is needed.`,
	}
	cmd.AddCommand(r.commands()...)
	return cmd
}
