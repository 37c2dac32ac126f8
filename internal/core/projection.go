package core

import (
	"fmt"

	"spikenet/internal/traits"
	"spikenet/internal/uid"
)

// Synapse connects neuron Source of the presynaptic population to neuron Target of the
// postsynaptic population.
type Synapse[S traits.Synapse] struct {
	Params S
	Source int
	Target int
}

// SynapseGenerator produces the synapse at index.
type SynapseGenerator[S traits.Synapse] func(index int) (Synapse[S], error)

// Projection is a directed, homogeneous group of synapses. Its endpoints are referenced by UID
// only and need not be registered anywhere.
type Projection[S traits.Synapse] struct {
	uid      uid.UID
	pre      uid.UID
	post     uid.UID
	synapses []Synapse[S]
}

// NewProjection builds a projection of count synapses from presynaptic to postsynaptic,
// calling gen once per index. Negative neuron indices produced by gen fail construction.
func NewProjection[S traits.Synapse](presynaptic, postsynaptic uid.UID, gen SynapseGenerator[S], count int, opts ...Option) (*Projection[S], error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: projection size %d is negative", ErrInvalidArgument, count)
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: synapse generator is required", ErrInvalidArgument)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	checked := func(index int) (Synapse[S], error) {
		s, err := gen(index)
		if err != nil {
			return Synapse[S]{}, err
		}
		if s.Source < 0 || s.Target < 0 {
			return Synapse[S]{}, fmt.Errorf("negative neuron index (source=%d target=%d)", s.Source, s.Target)
		}
		return s, nil
	}
	synapses, err := materialize[Synapse[S]](count, checked, o.workers)
	if err != nil {
		return nil, fmt.Errorf("projection %s: %w", o.uid, err)
	}
	return &Projection[S]{uid: o.uid, pre: presynaptic, post: postsynaptic, synapses: synapses}, nil
}

// UID returns the identifier, or uid.Nil for a nil receiver.
func (p *Projection[S]) UID() uid.UID {
	if p == nil {
		return uid.Nil
	}
	return p.uid
}

func (p *Projection[S]) projection() {}

func (p *Projection[S]) Kind() Kind {
	return KindProjection
}

func (p *Projection[S]) TypeTag() string {
	var zero S
	return zero.SynapseType()
}

func (p *Projection[S]) Size() int {
	return len(p.synapses)
}

func (p *Projection[S]) PresynapticUID() uid.UID {
	return p.pre
}

func (p *Projection[S]) PostsynapticUID() uid.UID {
	return p.post
}

func (p *Projection[S]) Synapse(index int) (Synapse[S], bool) {
	if index < 0 || index >= len(p.synapses) {
		return Synapse[S]{}, false
	}
	return p.synapses[index], true
}

// Synapses returns a copy of all synapses in index order.
func (p *Projection[S]) Synapses() []Synapse[S] {
	return append([]Synapse[S](nil), p.synapses...)
}

// FindBySource returns the indices of synapses leaving presynaptic neuron neuronIndex.
func (p *Projection[S]) FindBySource(neuronIndex int) []int {
	return p.find(func(s Synapse[S]) bool { return s.Source == neuronIndex })
}

// FindByTarget returns the indices of synapses entering postsynaptic neuron neuronIndex.
func (p *Projection[S]) FindByTarget(neuronIndex int) []int {
	return p.find(func(s Synapse[S]) bool { return s.Target == neuronIndex })
}

func (p *Projection[S]) find(match func(Synapse[S]) bool) []int {
	var out []int
	for i, s := range p.synapses {
		if match(s) {
			out = append(out, i)
		}
	}
	return out
}
