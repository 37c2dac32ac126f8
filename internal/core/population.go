package core

import (
	"fmt"

	"spikenet/internal/traits"
	"spikenet/internal/uid"
)

// NeuronGenerator produces the parameter record of the neuron at index.
type NeuronGenerator[N traits.Neuron] func(index int) (N, error)

// Population is a homogeneous group of neurons sharing one parameter model.
type Population[N traits.Neuron] struct {
	uid     uid.UID
	neurons []N
}

// NewPopulation builds a population of count neurons, calling gen once per index in index
// order (unless WithWorkers is set). No population is returned if any call fails.
func NewPopulation[N traits.Neuron](gen NeuronGenerator[N], count int, opts ...Option) (*Population[N], error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: population size %d is negative", ErrInvalidArgument, count)
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: neuron generator is required", ErrInvalidArgument)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	neurons, err := materialize[N](count, gen, o.workers)
	if err != nil {
		return nil, fmt.Errorf("population %s: %w", o.uid, err)
	}
	return &Population[N]{uid: o.uid, neurons: neurons}, nil
}

// UID returns the identifier, or uid.Nil for a nil receiver.
func (p *Population[N]) UID() uid.UID {
	if p == nil {
		return uid.Nil
	}
	return p.uid
}

func (p *Population[N]) population() {}

func (p *Population[N]) Kind() Kind {
	return KindPopulation
}

func (p *Population[N]) TypeTag() string {
	var zero N
	return zero.NeuronType()
}

func (p *Population[N]) Size() int {
	return len(p.neurons)
}

// Neuron returns the parameters of the neuron at index.
func (p *Population[N]) Neuron(index int) (N, bool) {
	if index < 0 || index >= len(p.neurons) {
		var zero N
		return zero, false
	}
	return p.neurons[index], true
}

// Neurons returns a copy of all neuron parameter records in index order.
func (p *Population[N]) Neurons() []N {
	return append([]N(nil), p.neurons...)
}
