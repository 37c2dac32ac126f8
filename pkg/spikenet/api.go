// Package spikenet is the public entry point for building spiking network descriptions:
// populations and projections materialized from generators and held by a Network.
package spikenet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"spikenet/internal/config"
	"spikenet/internal/core"
	"spikenet/internal/journal"
	"spikenet/internal/logging"
	"spikenet/internal/network"
	"spikenet/internal/traits"
	"spikenet/internal/uid"
)

var ErrJournalDisabled = errors.New("membership journal disabled")

type Options struct {
	// Config takes precedence over ConfigPath. With neither set, config.Default is used.
	Config     *config.Config
	ConfigPath string
	// Logger overrides the logger built from the log section of the config.
	Logger *zap.Logger
}

// Client carries the settings shared by every network and entity it creates.
type Client struct {
	cfg       config.Config
	logger    *logging.Logger
	generator uid.Generator
	store     journal.Store
	recorder  *journal.Recorder

	initMu      sync.Mutex
	initialized bool
}

func New(opts Options) (*Client, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	var logger *logging.Logger
	if opts.Logger != nil {
		logger = logging.FromZap(opts.Logger)
	} else {
		logger, err = logging.New(cfg.Log.Mode, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
	}

	store, err := journal.NewStore(cfg.Journal.Store, cfg.Journal.SQLitePath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:       cfg,
		logger:    logger,
		generator: cfg.Generator(),
		store:     store,
	}
	if store != nil {
		c.recorder = journal.NewRecorder(store, logger)
	}
	if err := c.Init(context.Background()); err != nil {
		_ = journal.CloseIfSupported(store)
		return nil, err
	}
	return c, nil
}

func resolveConfig(opts Options) (config.Config, error) {
	switch {
	case opts.Config != nil:
		cfg := *opts.Config
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
		return cfg, nil
	case opts.ConfigPath != "":
		return config.Load(opts.ConfigPath)
	default:
		return config.Default(), nil
	}
}

// Init prepares the journal store. New has already called it, so networks created by the
// client journal from their first change; later calls are no-ops.
func (c *Client) Init(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.initialized {
		return nil
	}
	if c.store != nil {
		if err := c.store.Init(ctx); err != nil {
			return fmt.Errorf("init journal store: %w", err)
		}
	}
	c.initialized = true
	c.logger.Info("client initialized",
		"journal_store", c.cfg.Journal.Store,
		"uid_generator", c.cfg.UID.Generator,
		"workers", c.cfg.Construction.Workers,
		"neuron_types", traits.NeuronTypes(),
		"synapse_types", traits.SynapseTypes(),
	)
	return nil
}

func (c *Client) Close() error {
	c.logger.Sync()
	return journal.CloseIfSupported(c.store)
}

func (c *Client) Config() config.Config {
	return c.cfg
}

// NewUID draws an identifier from the client's generator.
func (c *Client) NewUID() UID {
	return c.generator.Next()
}

// NewNetwork returns an empty network wired to the client's logger and journal. Options given
// here are applied after the client defaults.
func (c *Client) NewNetwork(opts ...network.Option) *Network {
	defaults := []network.Option{
		network.WithUID(c.generator.Next()),
		network.WithLogger(c.logger),
	}
	if c.recorder != nil {
		defaults = append(defaults, network.WithObserver(c.recorder))
	}
	return network.New(append(defaults, opts...)...)
}

// History returns the journaled membership changes of a network in the order they happened.
func (c *Client) History(ctx context.Context, networkUID UID) ([]MembershipEvent, error) {
	if c.store == nil {
		return nil, ErrJournalDisabled
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	events, ok, err := c.store.Events(ctx, networkUID.String())
	if err != nil {
		return nil, err
	}
	if !ok {
		return []MembershipEvent{}, nil
	}
	return events, nil
}

func (c *Client) ResetHistory(ctx context.Context, networkUID UID) error {
	if c.store == nil {
		return ErrJournalDisabled
	}
	if err := c.Init(ctx); err != nil {
		return err
	}
	return c.store.Reset(ctx, networkUID.String())
}

func (c *Client) entityOptions(opts []core.Option) []core.Option {
	defaults := []core.Option{
		core.WithUID(c.generator.Next()),
		core.WithWorkers(c.cfg.Construction.Workers),
	}
	return append(defaults, opts...)
}

// NewPopulation builds a population using the client's UID generator and worker setting.
func NewPopulation[N traits.Neuron](c *Client, gen NeuronGenerator[N], count int, opts ...core.Option) (*Population[N], error) {
	return core.NewPopulation(gen, count, c.entityOptions(opts)...)
}

// NewProjection builds a projection using the client's UID generator and worker setting.
func NewProjection[S traits.Synapse](c *Client, presynaptic, postsynaptic UID, gen SynapseGenerator[S], count int, opts ...core.Option) (*Projection[S], error) {
	return core.NewProjection(presynaptic, postsynaptic, gen, count, c.entityOptions(opts)...)
}
