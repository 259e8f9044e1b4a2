package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kherge/dev/internal/docker"
	"github.com/kherge/dev/internal/model"
)

// newVolumeCommand creates the "volume" command group.
func newVolumeCommand(a *app) *cobra.Command {
	r := &resource[model.Volume]{
		app:  a,
		kind: model.KindVolume,
		newManager: func(api docker.EngineAPI, log zerolog.Logger) resourceManager[model.Volume] {
			return docker.NewVolumeManager(api, log)
		},
		row: func(v model.Volume) listRow {
			return listRow{Name: v.Name, CreatedAt: v.CreatedAt}
		},
		details: func(v model.Volume) []field {
			return []field{
				{"Name", v.Name},
				{"Driver", v.Driver},
				{"Mountpoint", v.Mountpoint},
				{"Created At", v.CreatedAt},
				{"Labels", formatLabels(v.Labels)},
			}
		},
	}

	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Manage volumes",
		Long: `Manage volumes.

Volumes persist the files in the home directory across containers, so
container images can be changed iteratively without losing settings kept
in the home folder. Managed volumes use the "local" driver.`,
	}
	cmd.AddCommand(r.commands()...)
	return cmd
}
