// Package dockertest provides a testify-backed fake of the Docker Engine
// API calls used by the dev CLI.
package dockertest

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/stretchr/testify/mock"
)

// Engine is a mock.Mock implementing docker.EngineAPI. Set expectations
// with On and the exact arguments the code under test is expected to send.
type Engine struct {
	mock.Mock
}

// NewEngine creates an Engine bound to t. Expectations are asserted when
// the test finishes.
func NewEngine(t interface {
	mock.TestingT
	Cleanup(func())
}) *Engine {
	e := &Engine{}
	e.Test(t)
	t.Cleanup(func() { e.AssertExpectations(t) })
	return e
}

func (e *Engine) NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error) {
	args := e.Called(ctx, name, options)
	resp, _ := args.Get(0).(network.CreateResponse)
	return resp, args.Error(1)
}

func (e *Engine) NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error) {
	args := e.Called(ctx, options)
	resp, _ := args.Get(0).([]network.Summary)
	return resp, args.Error(1)
}

func (e *Engine) NetworkInspect(ctx context.Context, networkID string, options network.InspectOptions) (network.Inspect, error) {
	args := e.Called(ctx, networkID, options)
	resp, _ := args.Get(0).(network.Inspect)
	return resp, args.Error(1)
}

func (e *Engine) NetworkRemove(ctx context.Context, networkID string) error {
	args := e.Called(ctx, networkID)
	return args.Error(0)
}

func (e *Engine) VolumeCreate(ctx context.Context, options volume.CreateOptions) (volume.Volume, error) {
	args := e.Called(ctx, options)
	resp, _ := args.Get(0).(volume.Volume)
	return resp, args.Error(1)
}

func (e *Engine) VolumeList(ctx context.Context, options volume.ListOptions) (volume.ListResponse, error) {
	args := e.Called(ctx, options)
	resp, _ := args.Get(0).(volume.ListResponse)
	return resp, args.Error(1)
}

func (e *Engine) VolumeInspect(ctx context.Context, volumeID string) (volume.Volume, error) {
	args := e.Called(ctx, volumeID)
	resp, _ := args.Get(0).(volume.Volume)
	return resp, args.Error(1)
}

func (e *Engine) VolumeRemove(ctx context.Context, volumeID string, force bool) error {
	args := e.Called(ctx, volumeID, force)
	return args.Error(0)
}

func (e *Engine) Ping(ctx context.Context) (types.Ping, error) {
	args := e.Called(ctx)
	resp, _ := args.Get(0).(types.Ping)
	return resp, args.Error(1)
}

// Close is a no-op; the fake holds no resources.
func (e *Engine) Close() error {
	return nil
}

// NetworkListWithLabel matches network.ListOptions whose only label filter
// value is want.
func NetworkListWithLabel(want string) interface{} {
	return mock.MatchedBy(func(o network.ListOptions) bool {
		return onlyLabel(o.Filters.Get("label"), want) && o.Filters.Len() == 1
	})
}

// VolumeListWithLabel matches volume.ListOptions whose only label filter
// value is want.
func VolumeListWithLabel(want string) interface{} {
	return mock.MatchedBy(func(o volume.ListOptions) bool {
		return onlyLabel(o.Filters.Get("label"), want) && o.Filters.Len() == 1
	})
}

func onlyLabel(values []string, want string) bool {
	return len(values) == 1 && values[0] == want
}
