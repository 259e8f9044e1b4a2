package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kherge/dev/internal/docker"
	"github.com/kherge/dev/internal/model"
)

// resourceManager is what the leaf commands need from a manager.
// docker.NetworkManager and docker.VolumeManager both satisfy it.
type resourceManager[T any] interface {
	Create(ctx context.Context, name string) error
	List(ctx context.Context) ([]T, error)
	Inspect(ctx context.Context, name string) (T, error)
	Remove(ctx context.Context, name string) error
}

// resource describes one command group: how to build its manager and how
// to project its values for output.
type resource[T any] struct {
	app  *app
	kind model.ResourceKind

	newManager func(docker.EngineAPI, zerolog.Logger) resourceManager[T]

	// row projects a value to the list columns.
	row func(T) listRow

	// details lists the fields shown by inspect in table mode.
	details func(T) []field
}

// manager connects (or reuses the injected client) and returns the
// manager for this resource kind.
func (r *resource[T]) manager(cmd *cobra.Command) (resourceManager[T], error) {
	api, err := r.app.engine(cmd.Context())
	if err != nil {
		return nil, err
	}
	return r.newManager(api, r.app.log), nil
}

// format returns the configured output format.
func (r *resource[T]) format() string {
	return r.app.cfg.Output.Format
}

// commands returns the leaf commands shared by every resource group.
func (r *resource[T]) commands() []*cobra.Command {
	return []*cobra.Command{
		newCreateCommand(r),
		newListCommand(r),
		newInspectCommand(r),
		newRemoveCommand(r),
	}
}
