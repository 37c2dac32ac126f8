package traits

import "math"

const (
	BLIFATNeuronType               = "BLIFATNeuron"
	SynapticResourceSTDPNeuronType = "SynapticResourceSTDPBLIFATNeuron"
)

// Neuron is implemented by every per-neuron parameter record a population can hold.
type Neuron interface {
	NeuronType() string
}

// BLIFATNeuron holds the state and parameters of a bursting leaky integrate-and-fire neuron
// with adaptive threshold.
type BLIFATNeuron struct {
	StepsSinceLastFiring        uint64  `json:"steps_since_last_firing"`
	DynamicThreshold            float64 `json:"dynamic_threshold"`
	ThresholdDecay              float64 `json:"threshold_decay"`
	ThresholdIncrement          float64 `json:"threshold_increment"`
	PostsynapticTrace           float64 `json:"postsynaptic_trace"`
	PostsynapticTraceDecay      float64 `json:"postsynaptic_trace_decay"`
	PostsynapticTraceIncrement  float64 `json:"postsynaptic_trace_increment"`
	InhibitoryConductance       float64 `json:"inhibitory_conductance"`
	InhibitoryConductanceDecay  float64 `json:"inhibitory_conductance_decay"`
	Potential                   float64 `json:"potential"`
	PotentialDecay              float64 `json:"potential_decay"`
	BurstingPeriod              uint32  `json:"bursting_period"`
	ReflexiveWeight             float64 `json:"reflexive_weight"`
	ReversalInhibitoryPotential float64 `json:"reversal_inhibitory_potential"`
	AbsoluteRefractoryPeriod    uint32  `json:"absolute_refractory_period"`
	PotentialResetValue         float64 `json:"potential_reset_value"`
	MinPotential                float64 `json:"min_potential"`
	ActivationThreshold         float64 `json:"activation_threshold"`
}

func DefaultBLIFATNeuron() BLIFATNeuron {
	return BLIFATNeuron{
		StepsSinceLastFiring:        math.MaxUint64,
		ReversalInhibitoryPotential: -0.3,
		MinPotential:                -1.0e9,
		ActivationThreshold:         1,
	}
}

func (BLIFATNeuron) NeuronType() string { return BLIFATNeuronType }

// SynapticResourceSTDPNeuron extends BLIFAT with the per-neuron synaptic resource pool used by
// resource-based STDP rules.
type SynapticResourceSTDPNeuron struct {
	BLIFATNeuron
	FreeSynapticResource      float64 `json:"free_synaptic_resource"`
	SynapticResourceThreshold float64 `json:"synaptic_resource_threshold"`
	ResourceDrainCoefficient  uint32  `json:"resource_drain_coefficient"`
	StabilityChangeParameter  float64 `json:"stability_change_parameter"`
	DopaminePlasticityPeriod  uint32  `json:"dopamine_plasticity_period"`
	ISIMaxPeriod              uint32  `json:"isi_max_period"`
}

func DefaultSynapticResourceSTDPNeuron() SynapticResourceSTDPNeuron {
	return SynapticResourceSTDPNeuron{
		BLIFATNeuron:              DefaultBLIFATNeuron(),
		FreeSynapticResource:      1,
		SynapticResourceThreshold: math.Inf(1),
		ISIMaxPeriod:              1,
	}
}

func (SynapticResourceSTDPNeuron) NeuronType() string { return SynapticResourceSTDPNeuronType }
