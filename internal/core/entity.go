// Package core holds the network building blocks: populations of neurons and projections of
// synapses, each materialized from a caller-supplied generator.
package core

import (
	"errors"
	"fmt"

	"spikenet/internal/uid"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrGenerator       = errors.New("generator failed")
)

// Kind tells populations and projections apart behind the Entity interface.
type Kind int

const (
	KindPopulation Kind = iota + 1
	KindProjection
)

func (k Kind) String() string {
	switch k {
	case KindPopulation:
		return "population"
	case KindProjection:
		return "projection"
	default:
		return "unknown"
	}
}

// Entity is the view a network has of anything it holds.
type Entity interface {
	UID() uid.UID
	Kind() Kind
	// TypeTag names the neuron or synapse parameter model of the elements.
	TypeTag() string
	Size() int
}

// Connection is implemented by entities that link two populations.
type Connection interface {
	Entity
	PresynapticUID() uid.UID
	PostsynapticUID() uid.UID
}

// AnyPopulation is satisfied by every *Population regardless of its neuron type.
type AnyPopulation interface {
	Entity
	population()
}

// AnyProjection is satisfied by every *Projection regardless of its synapse type.
type AnyProjection interface {
	Connection
	projection()
}

type options struct {
	uid     uid.UID
	workers int
}

type Option func(*options)

// WithUID assigns an explicit identifier instead of drawing a fresh one. The nil UID
// counts as not supplied.
func WithUID(id uid.UID) Option {
	return func(o *options) {
		o.uid = id
	}
}

// WithWorkers spreads generator calls over up to n goroutines. Each index is still
// generated exactly once, but calls are no longer ordered by index, so generators must not
// depend on call order. Values below 2 keep sequential construction.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func buildOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.uid.IsNil() {
		o.uid = uid.New()
	}
	if o.workers < 0 {
		return options{}, fmt.Errorf("%w: worker count %d is negative", ErrInvalidArgument, o.workers)
	}
	return o, nil
}
