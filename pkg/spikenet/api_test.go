package spikenet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"spikenet/internal/config"
	"spikenet/internal/model"
)

func blifat(int) (BLIFATNeuron, error) {
	return BLIFATNeuron{ActivationThreshold: 1}, nil
}

func delta(i int) (Synapse[DeltaSynapse], error) {
	return Synapse[DeltaSynapse]{Params: DeltaSynapse{Weight: 1, Delay: 1}, Source: i, Target: 0}, nil
}

func newClient(t *testing.T, cfg config.Config) *Client {
	t.Helper()
	client, err := New(Options{Config: &cfg})
	require.NoError(t, err)
	require.NoError(t, client.Init(context.Background()))
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClientBuildsNetworkWithJournal(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Journal.Store = "memory"
	client := newClient(t, cfg)

	net := client.NewNetwork()
	pop, err := NewPopulation(client, blifat, 5)
	require.NoError(t, err)
	proj, err := NewProjection(client, pop.UID(), pop.UID(), delta, 5)
	require.NoError(t, err)

	require.NoError(t, net.AddPopulation(pop))
	require.NoError(t, net.AddProjection(proj))
	require.ErrorIs(t, net.AddPopulation(pop), ErrDuplicateUID)
	require.NoError(t, net.RemoveProjection(proj.UID()))
	require.ErrorIs(t, net.RemoveProjection(proj.UID()), ErrNotFound)

	assert.Equal(t, 1, net.PopulationsCount())
	assert.Equal(t, 0, net.ProjectionsCount())

	history, err := client.History(ctx, net.UID())
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, model.OpAdded, history[0].Op)
	assert.Equal(t, "population", history[0].Kind)
	assert.Equal(t, model.OpAdded, history[1].Op)
	assert.Equal(t, "projection", history[1].Kind)
	assert.Equal(t, model.OpRemoved, history[2].Op)
	assert.Equal(t, proj.UID().String(), history[2].EntityUID)

	require.NoError(t, client.ResetHistory(ctx, net.UID()))
	history, err = client.History(ctx, net.UID())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestClientWithoutJournal(t *testing.T) {
	ctx := context.Background()
	client := newClient(t, config.Default())

	net := client.NewNetwork()
	pop, err := NewPopulation(client, blifat, 1)
	require.NoError(t, err)
	require.NoError(t, net.AddPopulation(pop))

	_, err = client.History(ctx, net.UID())
	assert.ErrorIs(t, err, ErrJournalDisabled)
	assert.ErrorIs(t, client.ResetHistory(ctx, net.UID()), ErrJournalDisabled)
}

func TestClientSequentialUIDs(t *testing.T) {
	cfg := config.Default()
	cfg.UID.Generator = "sequential"
	cfg.UID.Start = 1 << 32
	client := newClient(t, cfg)

	net := client.NewNetwork()
	assert.Equal(t, "00000000-0000-0000-0000-000100000000", net.UID().String())

	pop, err := NewPopulation(client, blifat, 2)
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000100000001", pop.UID().String())

	assert.Equal(t, "00000000-0000-0000-0000-000100000002", client.NewUID().String())
}

func TestSequentialClientsShareOneSequence(t *testing.T) {
	cfg := config.Default()
	cfg.UID.Generator = "sequential"
	first := newClient(t, cfg)
	second := newClient(t, cfg)

	netA := first.NewNetwork()
	netB := second.NewNetwork()
	assert.NotEqual(t, netA.UID(), netB.UID())

	popA, err := NewPopulation(first, blifat, 1)
	require.NoError(t, err)
	popB, err := NewPopulation(second, blifat, 1)
	require.NoError(t, err)
	assert.NotEqual(t, popA.UID(), popB.UID())

	shared := first.NewNetwork()
	require.NoError(t, shared.AddPopulation(popA))
	require.NoError(t, shared.AddPopulation(popB))
	assert.Equal(t, 2, shared.PopulationsCount())
}

func TestJournalRecordsWithoutExplicitInit(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Journal.Store = "memory"
	client, err := New(Options{Config: &cfg})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	net := client.NewNetwork()
	pop, err := NewPopulation(client, blifat, 2)
	require.NoError(t, err)
	require.NoError(t, net.AddPopulation(pop))
	require.NoError(t, net.RemovePopulation(pop.UID()))

	history, err := client.History(ctx, net.UID())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.OpAdded, history[0].Op)
	assert.Equal(t, model.OpRemoved, history[1].Op)
	assert.Equal(t, pop.UID().String(), history[1].EntityUID)
}

func TestClientParallelConstruction(t *testing.T) {
	cfg := config.Default()
	cfg.Construction.Workers = 4
	client := newClient(t, cfg)

	parallel, err := NewProjection(client, NewUID(), NewUID(), delta, 64)
	require.NoError(t, err)
	for i, s := range parallel.Synapses() {
		assert.Equal(t, i, s.Source)
	}
}

func TestClientGeneratorFailure(t *testing.T) {
	client := newClient(t, config.Default())
	cause := errors.New("bad neuron")
	_, err := NewPopulation(client, func(i int) (BLIFATNeuron, error) {
		return BLIFATNeuron{}, cause
	}, 3)
	assert.ErrorIs(t, err, ErrGenerator)
	assert.ErrorIs(t, err, cause)

	_, err = NewPopulation(client, blifat, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTypedLookupThroughFacade(t *testing.T) {
	client := newClient(t, config.Default())
	net := client.NewNetwork()
	pop, err := NewPopulation(client, blifat, 3)
	require.NoError(t, err)
	require.NoError(t, net.AddPopulation(pop))

	typed, err := PopulationOf[BLIFATNeuron](net, pop.UID())
	require.NoError(t, err)
	assert.Equal(t, 3, typed.Size())

	_, err = ProjectionOf[DeltaSynapse](net, pop.UID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = PopulationOf[SynapticResourceSTDPNeuron](net, pop.UID())
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNewFromConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spikenet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  store: memory\nconstruction:\n  workers: 3\n"), 0o600))

	client, err := New(Options{ConfigPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	assert.Equal(t, 3, client.Config().Construction.Workers)

	_, err = New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	bad := config.Default()
	bad.Journal.Store = "redis"
	_, err = New(Options{Config: &bad})
	assert.Error(t, err)
}

func TestClientUsesInjectedLogger(t *testing.T) {
	zcore, logs := observer.New(zapcore.DebugLevel)
	client, err := New(Options{Logger: zap.New(zcore)})
	require.NoError(t, err)
	require.NoError(t, client.Init(context.Background()))
	require.NoError(t, client.Init(context.Background()))

	net := client.NewNetwork()
	pop, err := NewPopulation(client, blifat, 1)
	require.NoError(t, err)
	require.NoError(t, net.AddPopulation(pop))

	assert.Len(t, logs.FilterMessage("client initialized").All(), 1)
	assert.Len(t, logs.FilterMessage("population added").All(), 1)
}

func TestMembershipScenarios(t *testing.T) {
	client := newClient(t, config.Default())

	t.Run("empty network", func(t *testing.T) {
		net := client.NewNetwork()
		assert.Equal(t, 0, net.PopulationsCount())
		assert.Equal(t, 0, net.ProjectionsCount())
	})
	t.Run("remove projection of size 5", func(t *testing.T) {
		net := client.NewNetwork()
		proj, err := NewProjection(client, NewUID(), NewUID(), delta, 5)
		require.NoError(t, err)
		require.NoError(t, net.AddProjection(proj))
		require.NoError(t, net.RemoveProjection(proj.UID()))
		assert.Equal(t, 0, net.ProjectionsCount())
	})
	t.Run("remove population of size 5", func(t *testing.T) {
		net := client.NewNetwork()
		pop, err := NewPopulation(client, blifat, 5)
		require.NoError(t, err)
		require.NoError(t, net.AddPopulation(pop))
		require.NoError(t, net.RemovePopulation(pop.UID()))
		assert.Equal(t, 0, net.PopulationsCount())
	})
}
