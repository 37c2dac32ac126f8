package spikenet

import (
	"spikenet/internal/core"
	"spikenet/internal/model"
	"spikenet/internal/network"
	"spikenet/internal/traits"
	"spikenet/internal/uid"
)

type (
	UID     = uid.UID
	Network = network.Network
	Entity  = core.Entity
	Kind    = core.Kind

	Population[N traits.Neuron]        = core.Population[N]
	Projection[S traits.Synapse]       = core.Projection[S]
	Synapse[S traits.Synapse]          = core.Synapse[S]
	NeuronGenerator[N traits.Neuron]   = core.NeuronGenerator[N]
	SynapseGenerator[S traits.Synapse] = core.SynapseGenerator[S]

	NeuronTraits  = traits.Neuron
	SynapseTraits = traits.Synapse

	BLIFATNeuron               = traits.BLIFATNeuron
	SynapticResourceSTDPNeuron = traits.SynapticResourceSTDPNeuron
	DeltaSynapse               = traits.DeltaSynapse
	AdditiveSTDPDeltaSynapse   = traits.AdditiveSTDPDeltaSynapse

	MembershipEvent = model.MembershipEvent
)

const (
	KindPopulation = core.KindPopulation
	KindProjection = core.KindProjection
)

var (
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrGenerator       = core.ErrGenerator
	ErrDuplicateUID    = network.ErrDuplicateUID
	ErrNotFound        = network.ErrNotFound
	ErrTypeMismatch    = network.ErrTypeMismatch
)

var NilUID = uid.Nil

func NewUID() UID {
	return uid.New()
}

func ParseUID(s string) (UID, error) {
	return uid.Parse(s)
}

// PopulationOf returns a network population with its concrete neuron type.
func PopulationOf[N traits.Neuron](n *Network, id UID) (*Population[N], error) {
	return network.PopulationOf[N](n, id)
}

// ProjectionOf returns a network projection with its concrete synapse type.
func ProjectionOf[S traits.Synapse](n *Network, id UID) (*Projection[S], error) {
	return network.ProjectionOf[S](n, id)
}
