package docker

import (
	"context"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/volume"
	"github.com/rs/zerolog"

	"github.com/kherge/dev/internal/model"
)

// VolumeDriver is the driver for every volume this tool creates.
const VolumeDriver = "local"

// VolumeManager creates, lists and removes managed Docker volumes.
// Volumes persist home directory contents across container rebuilds.
type VolumeManager struct {
	api EngineAPI
	log zerolog.Logger
}

// NewVolumeManager returns a manager that issues its calls through api.
func NewVolumeManager(api EngineAPI, log zerolog.Logger) *VolumeManager {
	return &VolumeManager{
		api: api,
		log: log.With().Str("component", "volume").Logger(),
	}
}

// Create creates a local volume carrying the managed label.
func (m *VolumeManager) Create(ctx context.Context, name string) error {
	m.log.Debug().Str("name", name).Msg("creating volume")

	_, err := m.api.VolumeCreate(ctx, volume.CreateOptions{
		Name:   name,
		Driver: VolumeDriver,
		Labels: ManagedLabels(),
	})
	if err != nil {
		return fmt.Errorf("failed to create volume %q: %w", name, err)
	}
	return nil
}

// List returns the volumes the engine reports for the managed label filter.
func (m *VolumeManager) List(ctx context.Context) ([]model.Volume, error) {
	m.log.Debug().Msg("listing volumes")

	resp, err := m.api.VolumeList(ctx, volume.ListOptions{
		Filters: ManagedFilter(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}

	for _, w := range resp.Warnings {
		m.log.Warn().Str("warning", w).Msg("engine warning while listing volumes")
	}

	result := make([]model.Volume, 0, len(resp.Volumes))
	for _, v := range resp.Volumes {
		if v == nil {
			continue
		}
		result = append(result, volumeToModel(*v))
	}
	return result, nil
}

// Remove deletes a managed volume; see NetworkManager.Remove for the
// absent and unmanaged cases. The volume is never force-removed, so a
// volume still in use by a container makes the engine reject the call.
func (m *VolumeManager) Remove(ctx context.Context, name string) error {
	m.log.Debug().Str("name", name).Msg("removing volume")

	lookup, err := m.find(ctx, name)
	if err != nil {
		return err
	}

	switch lookup.State {
	case model.LookupAbsent:
		return nil
	case model.LookupUnmanaged:
		return lookup.Err()
	}

	if err := m.api.VolumeRemove(ctx, name, false); err != nil {
		return fmt.Errorf("failed to remove volume %q: %w", name, err)
	}
	return nil
}

// Inspect returns a single managed volume.
func (m *VolumeManager) Inspect(ctx context.Context, name string) (model.Volume, error) {
	lookup, err := m.find(ctx, name)
	if err != nil {
		return model.Volume{}, err
	}

	switch lookup.State {
	case model.LookupAbsent:
		return model.Volume{}, model.NewCLIError(model.ExitNotFound,
			fmt.Sprintf("Docker volume object, %s, does not exist.", name))
	case model.LookupUnmanaged:
		return model.Volume{}, lookup.Err()
	}
	return lookup.Resource, nil
}

func (m *VolumeManager) find(ctx context.Context, name string) (model.Lookup[model.Volume], error) {
	m.log.Debug().Str("name", name).Msg("finding volume")

	v, err := m.api.VolumeInspect(ctx, name)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			m.log.Debug().Str("name", name).Msg("volume not found")
			return model.Absent[model.Volume](model.KindVolume, name), nil
		}
		return model.Lookup[model.Volume]{}, fmt.Errorf("failed to inspect volume %q: %w", name, err)
	}

	m.log.Debug().Str("name", name).Msg("volume found")

	if !IsManaged(v.Labels) {
		return model.Unmanaged[model.Volume](model.KindVolume, name), nil
	}

	m.log.Debug().Str("name", name).Msg("and is managed")
	return model.Found(model.KindVolume, name, volumeToModel(v)), nil
}

func volumeToModel(v volume.Volume) model.Volume {
	return model.Volume{
		Name:       v.Name,
		Driver:     v.Driver,
		Mountpoint: v.Mountpoint,
		CreatedAt:  v.CreatedAt,
		Labels:     v.Labels,
	}
}
