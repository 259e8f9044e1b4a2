package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/fatih/color"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kherge/dev/internal/docker"
	"github.com/kherge/dev/internal/docker/dockertest"
	"github.com/kherge/dev/internal/model"
)

var managed = map[string]string{docker.ManagedLabelKey: "true"}

type result struct {
	stdout string
	stderr string
	code   model.ExitCode
}

// run executes the command tree with args against engine. A nil engine
// leaves the client to be built from the environment.
func run(t *testing.T, engine *dockertest.Engine, args ...string) result {
	t.Helper()

	// Keep a developer's real config file out of the test.
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	var stdout, stderr bytes.Buffer
	opts := Options{Stdout: &stdout, Stderr: &stderr}
	if engine != nil {
		opts.Client = engine
	}

	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	code := Run(context.Background(), cmd)

	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func TestRoot_NoArgs(t *testing.T) {
	res := run(t, nil)

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "network")
	assert.Contains(t, res.stdout, "volume")
}

// TestNetworkCreate verifies the create call and confirmation message.
func TestNetworkCreate(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkCreate", mock.Anything, "devnet", network.CreateOptions{
		Attachable: true,
		Driver:     "host",
		Scope:      "global",
		Labels:     managed,
	}).Return(network.CreateResponse{ID: "n1"}, nil).Once()

	res := run(t, engine, "network", "create", "devnet")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Equal(t, "Network created.\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestNetworkCreate_Rejected(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkCreate", mock.Anything, "devnet", mock.Anything).
		Return(network.CreateResponse{}, fmt.Errorf("network with name devnet already exists: %w", cerrdefs.ErrConflict)).Once()

	res := run(t, engine, "network", "create", "devnet")

	assert.Equal(t, model.ExitGeneralError, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "already exists")
}

func TestNetworkCreate_MissingName(t *testing.T) {
	res := run(t, dockertest.NewEngine(t), "network", "create")

	assert.Equal(t, model.ExitGeneralError, res.code)
	assert.Contains(t, res.stderr, "accepts 1 arg")
}

// TestNetworkList_Empty verifies an empty listing prints only headers.
func TestNetworkList_Empty(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkList", mock.Anything, dockertest.NetworkListWithLabel(docker.ManagedLabelKey+"=true")).
		Return([]network.Summary{}, nil).Once()

	res := run(t, engine, "network", "list")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "Name")
	assert.Contains(t, res.stdout, "Created At")
	assert.NotContains(t, res.stdout, "CREATED AT", "headers are printed as given")
}

func TestNetworkList_Table(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkList", mock.Anything, mock.Anything).Return([]network.Summary{
		{Name: "devnet", Created: time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), Labels: managed},
	}, nil).Once()

	res := run(t, engine, "network", "ls")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "devnet")
	assert.Contains(t, res.stdout, "2026-02-28T10:00:00Z")
}

func TestNetworkList_JSON(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkList", mock.Anything, mock.Anything).Return([]network.Summary{
		{Name: "devnet", Created: time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), Labels: managed},
	}, nil).Once()

	res := run(t, engine, "-o", "json", "network", "list")
	require.Equal(t, model.ExitSuccess, res.code)

	var rows []listRow
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rows))
	assert.Equal(t, []listRow{{Name: "devnet", CreatedAt: "2026-02-28T10:00:00Z"}}, rows)
}

func TestNetworkList_EngineError(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkList", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	res := run(t, engine, "network", "list")

	assert.Equal(t, model.ExitGeneralError, res.code)
	assert.Contains(t, res.stderr, "boom")
}

// TestNetworkRemove verifies a managed network is deleted exactly once.
func TestNetworkRemove(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkInspect", mock.Anything, "devnet", network.InspectOptions{}).
		Return(network.Inspect{Name: "devnet", Labels: managed}, nil).Once()
	engine.On("NetworkRemove", mock.Anything, "devnet").Return(nil).Once()

	res := run(t, engine, "network", "remove", "devnet")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Equal(t, "Network removed.\n", res.stdout)
	engine.AssertNumberOfCalls(t, "NetworkRemove", 1)
}

func TestNetworkRemove_Absent(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkInspect", mock.Anything, "devnet", network.InspectOptions{}).
		Return(network.Inspect{}, fmt.Errorf("network devnet not found: %w", cerrdefs.ErrNotFound)).Once()

	res := run(t, engine, "network", "rm", "devnet")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Equal(t, "Network removed.\n", res.stdout)
	engine.AssertNotCalled(t, "NetworkRemove", mock.Anything, mock.Anything)
}

func TestNetworkInspect(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkInspect", mock.Anything, "devnet", network.InspectOptions{}).
		Return(network.Inspect{ID: "n1", Name: "devnet", Driver: "host", Scope: "global", Labels: managed}, nil).Once()

	res := run(t, engine, "network", "inspect", "devnet")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "devnet")
	assert.Contains(t, res.stdout, "host")
	assert.Contains(t, res.stdout, docker.ManagedLabelKey+"=true")
}

// TestVolumeCreate verifies the create call and confirmation message.
func TestVolumeCreate(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("VolumeCreate", mock.Anything, volume.CreateOptions{
		Name:   "data",
		Driver: "local",
		Labels: managed,
	}).Return(volume.Volume{Name: "data"}, nil).Once()

	res := run(t, engine, "volume", "create", "data")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Equal(t, "Volume created.\n", res.stdout)
}

func TestVolumeList_YAML(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("VolumeList", mock.Anything, dockertest.VolumeListWithLabel(docker.ManagedLabelKey+"=true")).
		Return(volume.ListResponse{Volumes: []*volume.Volume{
			{Name: "data", CreatedAt: "2026-02-28T10:00:00Z", Labels: managed},
		}}, nil).Once()

	res := run(t, engine, "--output", "yaml", "volume", "list")

	require.Equal(t, model.ExitSuccess, res.code)

	var rows []listRow
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &rows))
	assert.Equal(t, []listRow{{Name: "data", CreatedAt: "2026-02-28T10:00:00Z"}}, rows)
}

func TestVolumeList_EmptyJSON(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("VolumeList", mock.Anything, mock.Anything).Return(volume.ListResponse{}, nil).Once()

	res := run(t, engine, "-o", "json", "volume", "list")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Equal(t, "[]\n", res.stdout)
}

func TestVolumeRemove(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("VolumeInspect", mock.Anything, "data").
		Return(volume.Volume{Name: "data", Labels: managed}, nil).Once()
	engine.On("VolumeRemove", mock.Anything, "data", false).Return(nil).Once()

	res := run(t, engine, "volume", "remove", "data")

	assert.Equal(t, model.ExitSuccess, res.code)
	assert.Equal(t, "Volume removed.\n", res.stdout)
}

// TestVolumeRemove_Unmanaged verifies an unlabeled volume is reported and
// left alone.
func TestVolumeRemove_Unmanaged(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("VolumeInspect", mock.Anything, "unowned").
		Return(volume.Volume{Name: "unowned", Labels: map[string]string{"owner": "someone-else"}}, nil).Once()

	res := run(t, engine, "volume", "remove", "unowned")

	assert.Equal(t, model.ExitNotManaged, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Docker volume object, unowned, is not managed.")
	engine.AssertNotCalled(t, "VolumeRemove", mock.Anything, mock.Anything, mock.Anything)
}

func TestVolumeInspect_Absent(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("VolumeInspect", mock.Anything, "data").
		Return(volume.Volume{}, fmt.Errorf("get data: %w", cerrdefs.ErrNotFound)).Once()

	res := run(t, engine, "volume", "inspect", "data")

	assert.Equal(t, model.ExitNotFound, res.code)
	assert.Contains(t, res.stderr, "does not exist")
}

// TestDockerUnavailable verifies a dead daemon address maps to its own
// exit code when no client is injected.
func TestDockerUnavailable(t *testing.T) {
	host := "unix://" + filepath.Join(t.TempDir(), "missing.sock")

	res := run(t, nil, "--host", host, "volume", "list")

	assert.Equal(t, model.ExitDockerNotRunning, res.code)
	assert.NotEmpty(t, res.stderr)
}

func TestVerbosity(t *testing.T) {
	engine := dockertest.NewEngine(t)
	engine.On("NetworkList", mock.Anything, mock.Anything).Return([]network.Summary{}, nil).Times(2)

	quiet := run(t, engine, "network", "list")
	assert.NotContains(t, quiet.stderr, "listing networks")

	loud := run(t, engine, "-vvv", "network", "list")
	assert.Equal(t, model.ExitSuccess, loud.code)
	assert.Contains(t, loud.stderr, "listing networks")
}

func TestInvalidConfig(t *testing.T) {
	t.Run("unknown output format", func(t *testing.T) {
		res := run(t, dockertest.NewEngine(t), "-o", "xml", "network", "list")
		assert.Equal(t, model.ExitInvalidConfig, res.code)
		assert.Contains(t, res.stderr, "invalid output format")
	})

	t.Run("missing config file", func(t *testing.T) {
		res := run(t, dockertest.NewEngine(t), "--config", filepath.Join(t.TempDir(), "nope.jsonc"), "network", "list")
		assert.Equal(t, model.ExitInvalidConfig, res.code)
	})
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, model.ExitGeneralError, exitCodeFor(errors.New("x")))
	assert.Equal(t, model.ExitNotManaged,
		exitCodeFor(fmt.Errorf("wrapped: %w", &model.NotManagedError{Kind: model.KindNetwork, Name: "n"})))
	assert.Equal(t, model.ExitDockerNotRunning,
		exitCodeFor(model.NewCLIError(model.ExitDockerNotRunning, "down")))
}

func TestPrintError_NotManagedIsBare(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	printError(&buf, fmt.Errorf("remove: %w", &model.NotManagedError{Kind: model.KindVolume, Name: "unowned"}))
	assert.Equal(t, "Docker volume object, unowned, is not managed.\n", buf.String())
}
