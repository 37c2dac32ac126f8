package traits

const (
	DeltaSynapseType             = "DeltaSynapse"
	AdditiveSTDPDeltaSynapseType = "AdditiveSTDPDeltaSynapse"
)

// OutputType selects how a synapse impacts its postsynaptic neuron.
type OutputType int

const (
	OutputExcitatory OutputType = iota
	OutputInhibitoryCurrent
	OutputInhibitoryConductance
	OutputDopamine
	OutputBlocking
)

func (o OutputType) String() string {
	switch o {
	case OutputExcitatory:
		return "excitatory"
	case OutputInhibitoryCurrent:
		return "inhibitory_current"
	case OutputInhibitoryConductance:
		return "inhibitory_conductance"
	case OutputDopamine:
		return "dopamine"
	case OutputBlocking:
		return "blocking"
	default:
		return "unknown"
	}
}

// Synapse is implemented by every per-synapse parameter record a projection can hold.
type Synapse interface {
	SynapseType() string
}

// DeltaSynapse delivers its weight to the postsynaptic neuron after a fixed delay in steps.
type DeltaSynapse struct {
	Weight     float64    `json:"weight"`
	Delay      uint32     `json:"delay"`
	OutputType OutputType `json:"output_type"`
}

func DefaultDeltaSynapse() DeltaSynapse {
	return DeltaSynapse{Delay: 1, OutputType: OutputExcitatory}
}

func (DeltaSynapse) SynapseType() string { return DeltaSynapseType }

// AdditiveSTDPDeltaSynapse is a delta synapse whose weight is adjusted by an additive STDP rule.
type AdditiveSTDPDeltaSynapse struct {
	DeltaSynapse
	TauPlus                float64  `json:"tau_plus"`
	TauMinus               float64  `json:"tau_minus"`
	PresynapticSpikeTimes  []uint64 `json:"presynaptic_spike_times,omitempty"`
	PostsynapticSpikeTimes []uint64 `json:"postsynaptic_spike_times,omitempty"`
}

func DefaultAdditiveSTDPDeltaSynapse() AdditiveSTDPDeltaSynapse {
	return AdditiveSTDPDeltaSynapse{
		DeltaSynapse: DefaultDeltaSynapse(),
		TauPlus:      10,
		TauMinus:     10,
	}
}

func (AdditiveSTDPDeltaSynapse) SynapseType() string { return AdditiveSTDPDeltaSynapseType }
