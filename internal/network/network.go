// Package network holds populations and projections under one shared UID namespace.
package network

import (
	"errors"
	"fmt"
	"sync"

	"spikenet/internal/core"
	"spikenet/internal/logging"
	"spikenet/internal/traits"
	"spikenet/internal/uid"
)

var (
	ErrDuplicateUID = errors.New("duplicate uid")
	ErrNotFound     = errors.New("entity not found")
	ErrTypeMismatch = errors.New("entity type mismatch")
)

// Observer is notified of every committed membership change, in commit order. Readers are
// not blocked while observers run, but observers must not call back into the network.
type Observer interface {
	EntityAdded(network uid.UID, entity core.Entity)
	EntityRemoved(network uid.UID, entity core.Entity)
}

// Network is safe for concurrent use. Projection endpoints are never checked against
// membership, and removing a population leaves projections that reference it in place.
type Network struct {
	uid       uid.UID
	logger    *logging.Logger
	observers []Observer

	mu          sync.RWMutex
	populations ordered[core.AnyPopulation]
	projections ordered[core.AnyProjection]

	// notifyMu is taken before mu is released so notifications keep commit order.
	notifyMu sync.Mutex
}

type Option func(*Network)

func WithUID(id uid.UID) Option {
	return func(n *Network) {
		n.uid = id
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(n *Network) {
		n.logger = logger
	}
}

func WithObserver(observer Observer) Option {
	return func(n *Network) {
		if observer != nil {
			n.observers = append(n.observers, observer)
		}
	}
}

// New returns an empty network.
func New(opts ...Option) *Network {
	n := &Network{
		populations: newOrdered[core.AnyPopulation](),
		projections: newOrdered[core.AnyProjection](),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	if n.uid.IsNil() {
		n.uid = uid.New()
	}
	if n.logger == nil {
		n.logger = logging.Nop()
	}
	n.logger = n.logger.With("network_uid", n.uid.String())
	return n
}

func (n *Network) UID() uid.UID {
	return n.uid
}

func (n *Network) AddPopulation(p core.AnyPopulation) error {
	if p == nil {
		return fmt.Errorf("%w: population is nil", core.ErrInvalidArgument)
	}
	id := p.UID()
	if id.IsNil() {
		return fmt.Errorf("%w: population has the nil uid", core.ErrInvalidArgument)
	}

	n.mu.Lock()
	if err := n.checkFreeLocked(id); err != nil {
		n.mu.Unlock()
		n.logger.Warn("population rejected", "uid", id.String(), "error", err)
		return err
	}
	n.populations.put(id, p)
	n.logger.Debug("population added",
		"uid", id.String(),
		"type", p.TypeTag(),
		"size", p.Size(),
		"registered_type", traits.IsKnownNeuron(p.TypeTag()),
	)
	n.publishLocked(func(o Observer) { o.EntityAdded(n.uid, p) })
	return nil
}

// AddProjection registers p. Its endpoint UIDs are not required to be members.
func (n *Network) AddProjection(p core.AnyProjection) error {
	if p == nil {
		return fmt.Errorf("%w: projection is nil", core.ErrInvalidArgument)
	}
	id := p.UID()
	if id.IsNil() {
		return fmt.Errorf("%w: projection has the nil uid", core.ErrInvalidArgument)
	}

	n.mu.Lock()
	if err := n.checkFreeLocked(id); err != nil {
		n.mu.Unlock()
		n.logger.Warn("projection rejected", "uid", id.String(), "error", err)
		return err
	}
	n.projections.put(id, p)
	n.logger.Debug("projection added",
		"uid", id.String(),
		"type", p.TypeTag(),
		"size", p.Size(),
		"presynaptic_uid", p.PresynapticUID().String(),
		"postsynaptic_uid", p.PostsynapticUID().String(),
		"registered_type", traits.IsKnownSynapse(p.TypeTag()),
	)
	n.publishLocked(func(o Observer) { o.EntityAdded(n.uid, p) })
	return nil
}

// RemovePopulation deletes the population registered under id. Removing an absent UID is
// an error, never a no-op.
func (n *Network) RemovePopulation(id uid.UID) error {
	n.mu.Lock()
	p, ok := n.populations.remove(id)
	if !ok {
		err := n.notFoundLocked(id, core.KindPopulation)
		n.mu.Unlock()
		n.logger.Warn("population remove rejected", "uid", id.String(), "error", err)
		return err
	}
	n.logger.Debug("population removed", "uid", id.String(), "type", p.TypeTag(), "size", p.Size())
	n.publishLocked(func(o Observer) { o.EntityRemoved(n.uid, p) })
	return nil
}

func (n *Network) RemoveProjection(id uid.UID) error {
	n.mu.Lock()
	p, ok := n.projections.remove(id)
	if !ok {
		err := n.notFoundLocked(id, core.KindProjection)
		n.mu.Unlock()
		n.logger.Warn("projection remove rejected", "uid", id.String(), "error", err)
		return err
	}
	n.logger.Debug("projection removed", "uid", id.String(), "type", p.TypeTag(), "size", p.Size())
	n.publishLocked(func(o Observer) { o.EntityRemoved(n.uid, p) })
	return nil
}

func (n *Network) GetPopulation(id uid.UID) (core.AnyPopulation, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	p, ok := n.populations.get(id)
	if !ok {
		return nil, n.notFoundLocked(id, core.KindPopulation)
	}
	return p, nil
}

func (n *Network) GetProjection(id uid.UID) (core.AnyProjection, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	p, ok := n.projections.get(id)
	if !ok {
		return nil, n.notFoundLocked(id, core.KindProjection)
	}
	return p, nil
}

// Entity looks id up across both kinds; Kind on the result tells which one matched.
func (n *Network) Entity(id uid.UID) (core.Entity, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if p, ok := n.populations.get(id); ok {
		return p, nil
	}
	if p, ok := n.projections.get(id); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (n *Network) PopulationsCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.populations.len()
}

func (n *Network) ProjectionsCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.projections.len()
}

func (n *Network) HasPopulation(id uid.UID) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.populations.has(id)
}

func (n *Network) HasProjection(id uid.UID) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.projections.has(id)
}

// Contains reports whether id is held as either kind.
func (n *Network) Contains(id uid.UID) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.populations.has(id) || n.projections.has(id)
}

// Populations returns the held populations in insertion order.
func (n *Network) Populations() []core.AnyPopulation {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.populations.values()
}

// Projections returns the held projections in insertion order.
func (n *Network) Projections() []core.AnyProjection {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.projections.values()
}

func (n *Network) PopulationUIDs() []uid.UID {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.populations.uids()
}

func (n *Network) ProjectionUIDs() []uid.UID {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.projections.uids()
}

// ProjectionsFrom returns, in insertion order, the projections whose presynaptic endpoint is
// id. id does not need to be a member.
func (n *Network) ProjectionsFrom(id uid.UID) []core.AnyProjection {
	return n.filterProjections(func(p core.AnyProjection) bool { return p.PresynapticUID() == id })
}

// ProjectionsTo is the postsynaptic counterpart of ProjectionsFrom.
func (n *Network) ProjectionsTo(id uid.UID) []core.AnyProjection {
	return n.filterProjections(func(p core.AnyProjection) bool { return p.PostsynapticUID() == id })
}

func (n *Network) filterProjections(match func(core.AnyProjection) bool) []core.AnyProjection {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var out []core.AnyProjection
	for _, p := range n.projections.items {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// publishLocked is entered with mu write-locked and returns with it released. Observers run
// after mu is dropped, under notifyMu.
func (n *Network) publishLocked(notify func(Observer)) {
	if len(n.observers) == 0 {
		n.mu.Unlock()
		return
	}
	n.notifyMu.Lock()
	n.mu.Unlock()
	defer n.notifyMu.Unlock()
	for _, o := range n.observers {
		notify(o)
	}
}

func (n *Network) checkFreeLocked(id uid.UID) error {
	if n.populations.has(id) {
		return fmt.Errorf("%w: %s is already held as a population", ErrDuplicateUID, id)
	}
	if n.projections.has(id) {
		return fmt.Errorf("%w: %s is already held as a projection", ErrDuplicateUID, id)
	}
	return nil
}

func (n *Network) notFoundLocked(id uid.UID, want core.Kind) error {
	if want == core.KindPopulation && n.projections.has(id) {
		return fmt.Errorf("%w: %s is a projection, not a population", ErrNotFound, id)
	}
	if want == core.KindProjection && n.populations.has(id) {
		return fmt.Errorf("%w: %s is a population, not a projection", ErrNotFound, id)
	}
	return fmt.Errorf("%w: %s %s", ErrNotFound, want, id)
}

// PopulationOf returns the population registered under id with its concrete neuron type.
func PopulationOf[N traits.Neuron](n *Network, id uid.UID) (*core.Population[N], error) {
	p, err := n.GetPopulation(id)
	if err != nil {
		return nil, err
	}
	typed, ok := p.(*core.Population[N])
	if !ok {
		var zero N
		return nil, fmt.Errorf("%w: population %s holds %s, not %s", ErrTypeMismatch, id, p.TypeTag(), zero.NeuronType())
	}
	return typed, nil
}

// ProjectionOf returns the projection registered under id with its concrete synapse type.
func ProjectionOf[S traits.Synapse](n *Network, id uid.UID) (*core.Projection[S], error) {
	p, err := n.GetProjection(id)
	if err != nil {
		return nil, err
	}
	typed, ok := p.(*core.Projection[S])
	if !ok {
		var zero S
		return nil, fmt.Errorf("%w: projection %s holds %s, not %s", ErrTypeMismatch, id, p.TypeTag(), zero.SynapseType())
	}
	return typed, nil
}
