package docker

import (
	"context"
	"fmt"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/network"
	"github.com/rs/zerolog"

	"github.com/kherge/dev/internal/model"
)

// Networks created by this tool use the host driver in global scope so
// containers attached to them can reach, and be reached from, the host
// without port mapping.
const (
	NetworkDriver = "host"
	NetworkScope  = "global"
)

// NetworkManager creates, lists and removes managed Docker networks.
type NetworkManager struct {
	api EngineAPI
	log zerolog.Logger
}

// NewNetworkManager returns a manager that issues its calls through api.
func NewNetworkManager(api EngineAPI, log zerolog.Logger) *NetworkManager {
	return &NetworkManager{
		api: api,
		log: log.With().Str("component", "network").Logger(),
	}
}

// Create creates an attachable, globally scoped network with the host driver
// and the managed label. Duplicate names are rejected by the engine (the SDK
// sends CheckDuplicate to daemons older than API 1.44; newer daemons always
// check), and the engine's error is returned as-is, wrapped.
func (m *NetworkManager) Create(ctx context.Context, name string) error {
	m.log.Debug().Str("name", name).Msg("creating network")

	_, err := m.api.NetworkCreate(ctx, name, network.CreateOptions{
		Attachable: true,
		Driver:     NetworkDriver,
		Scope:      NetworkScope,
		Labels:     ManagedLabels(),
	})
	if err != nil {
		return fmt.Errorf("failed to create network %q: %w", name, err)
	}
	return nil
}

// List returns the networks the engine reports for the managed label filter.
func (m *NetworkManager) List(ctx context.Context) ([]model.Network, error) {
	m.log.Debug().Msg("listing networks")

	summaries, err := m.api.NetworkList(ctx, network.ListOptions{
		Filters: ManagedFilter(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	result := make([]model.Network, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, networkToModel(s))
	}
	return result, nil
}

// Remove deletes a managed network. A name the engine does not know is a
// silent no-op. A network that exists but is not managed yields a
// *model.NotManagedError and is left untouched.
func (m *NetworkManager) Remove(ctx context.Context, name string) error {
	m.log.Debug().Str("name", name).Msg("removing network")

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

	if err := m.api.NetworkRemove(ctx, name); err != nil {
		return fmt.Errorf("failed to remove network %q: %w", name, err)
	}
	return nil
}

// Inspect returns a single managed network. Unlike Remove, an absent
// network is an error here.
func (m *NetworkManager) Inspect(ctx context.Context, name string) (model.Network, error) {
	lookup, err := m.find(ctx, name)
	if err != nil {
		return model.Network{}, err
	}

	switch lookup.State {
	case model.LookupAbsent:
		return model.Network{}, model.NewCLIError(model.ExitNotFound,
			fmt.Sprintf("Docker network object, %s, does not exist.", name))
	case model.LookupUnmanaged:
		return model.Network{}, lookup.Err()
	}
	return lookup.Resource, nil
}

// find looks a network up by exact name and classifies the result.
// Engine errors other than not-found are returned unchanged.
func (m *NetworkManager) find(ctx context.Context, name string) (model.Lookup[model.Network], error) {
	m.log.Debug().Str("name", name).Msg("finding network")

	inspect, err := m.api.NetworkInspect(ctx, name, network.InspectOptions{})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			m.log.Debug().Str("name", name).Msg("network not found")
			return model.Absent[model.Network](model.KindNetwork, name), nil
		}
		return model.Lookup[model.Network]{}, fmt.Errorf("failed to inspect network %q: %w", name, err)
	}

	m.log.Debug().Str("name", name).Msg("network found")

	if !IsManaged(inspect.Labels) {
		return model.Unmanaged[model.Network](model.KindNetwork, name), nil
	}

	m.log.Debug().Str("name", name).Msg("and is managed")
	return model.Found(model.KindNetwork, name, networkToModel(inspect)), nil
}

// networkToModel converts a Docker API network to the domain type.
func networkToModel(n network.Inspect) model.Network {
	created := ""
	if !n.Created.IsZero() {
		created = n.Created.UTC().Format(time.RFC3339)
	}

	return model.Network{
		ID:        n.ID,
		Name:      n.Name,
		Driver:    n.Driver,
		Scope:     n.Scope,
		CreatedAt: created,
		Labels:    n.Labels,
	}
}
