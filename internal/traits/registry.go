package traits

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	SupportedSchemaVersion = 1
	SupportedCodecVersion  = 1
)

var (
	ErrTraitExists     = errors.New("trait already registered")
	ErrTraitNotFound   = errors.New("trait not found")
	ErrVersionMismatch = errors.New("trait version mismatch")
)

type NeuronFactory func() Neuron

type SynapseFactory func() Synapse

type NeuronSpec struct {
	Name          string
	Default       NeuronFactory
	SchemaVersion int
	CodecVersion  int
}

type SynapseSpec struct {
	Name          string
	Default       SynapseFactory
	SchemaVersion int
	CodecVersion  int
}

type registeredNeuron struct {
	factory       NeuronFactory
	schemaVersion int
	codecVersion  int
}

type registeredSynapse struct {
	factory       SynapseFactory
	schemaVersion int
	codecVersion  int
}

var neuronRegistry = struct {
	mu sync.RWMutex
	m  map[string]registeredNeuron
}{
	m: make(map[string]registeredNeuron),
}

var synapseRegistry = struct {
	mu sync.RWMutex
	m  map[string]registeredSynapse
}{
	m: make(map[string]registeredSynapse),
}

func init() {
	initializeBuiltInTraits()
}

func initializeBuiltInTraits() {
	MustRegisterNeuron(BLIFATNeuronType, func() Neuron { return DefaultBLIFATNeuron() })
	MustRegisterNeuron(SynapticResourceSTDPNeuronType, func() Neuron { return DefaultSynapticResourceSTDPNeuron() })
	MustRegisterSynapse(DeltaSynapseType, func() Synapse { return DefaultDeltaSynapse() })
	MustRegisterSynapse(AdditiveSTDPDeltaSynapseType, func() Synapse { return DefaultAdditiveSTDPDeltaSynapse() })
}

func RegisterNeuron(name string, factory NeuronFactory) error {
	return RegisterNeuronWithSpec(NeuronSpec{
		Name:          name,
		Default:       factory,
		SchemaVersion: SupportedSchemaVersion,
		CodecVersion:  SupportedCodecVersion,
	})
}

func MustRegisterNeuron(name string, factory NeuronFactory) {
	if err := RegisterNeuron(name, factory); err != nil {
		panic(err)
	}
}

func RegisterNeuronWithSpec(spec NeuronSpec) error {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return errors.New("neuron trait name is required")
	}
	if spec.Default == nil {
		return errors.New("neuron trait default factory is required")
	}
	if spec.SchemaVersion != SupportedSchemaVersion || spec.CodecVersion != SupportedCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, spec.SchemaVersion, spec.CodecVersion)
	}
	if got := spec.Default().NeuronType(); got != name {
		return fmt.Errorf("neuron trait %s: default record reports type %s", name, got)
	}

	neuronRegistry.mu.Lock()
	defer neuronRegistry.mu.Unlock()

	if _, exists := neuronRegistry.m[name]; exists {
		return fmt.Errorf("%w: neuron %s", ErrTraitExists, name)
	}
	neuronRegistry.m[name] = registeredNeuron{
		factory:       spec.Default,
		schemaVersion: spec.SchemaVersion,
		codecVersion:  spec.CodecVersion,
	}
	return nil
}

// LookupNeuron returns the default parameter record registered under name.
func LookupNeuron(name string) (Neuron, error) {
	neuronRegistry.mu.RLock()
	entry, ok := neuronRegistry.m[strings.TrimSpace(name)]
	neuronRegistry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: neuron %s", ErrTraitNotFound, name)
	}
	if entry.schemaVersion != SupportedSchemaVersion || entry.codecVersion != SupportedCodecVersion {
		return nil, fmt.Errorf("%w: neuron %s", ErrVersionMismatch, name)
	}
	return entry.factory(), nil
}

func NeuronTypes() []string {
	neuronRegistry.mu.RLock()
	defer neuronRegistry.mu.RUnlock()

	names := make([]string, 0, len(neuronRegistry.m))
	for n := range neuronRegistry.m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func RegisterSynapse(name string, factory SynapseFactory) error {
	return RegisterSynapseWithSpec(SynapseSpec{
		Name:          name,
		Default:       factory,
		SchemaVersion: SupportedSchemaVersion,
		CodecVersion:  SupportedCodecVersion,
	})
}

func MustRegisterSynapse(name string, factory SynapseFactory) {
	if err := RegisterSynapse(name, factory); err != nil {
		panic(err)
	}
}

func RegisterSynapseWithSpec(spec SynapseSpec) error {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return errors.New("synapse trait name is required")
	}
	if spec.Default == nil {
		return errors.New("synapse trait default factory is required")
	}
	if spec.SchemaVersion != SupportedSchemaVersion || spec.CodecVersion != SupportedCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, spec.SchemaVersion, spec.CodecVersion)
	}
	if got := spec.Default().SynapseType(); got != name {
		return fmt.Errorf("synapse trait %s: default record reports type %s", name, got)
	}

	synapseRegistry.mu.Lock()
	defer synapseRegistry.mu.Unlock()

	if _, exists := synapseRegistry.m[name]; exists {
		return fmt.Errorf("%w: synapse %s", ErrTraitExists, name)
	}
	synapseRegistry.m[name] = registeredSynapse{
		factory:       spec.Default,
		schemaVersion: spec.SchemaVersion,
		codecVersion:  spec.CodecVersion,
	}
	return nil
}

func LookupSynapse(name string) (Synapse, error) {
	synapseRegistry.mu.RLock()
	entry, ok := synapseRegistry.m[strings.TrimSpace(name)]
	synapseRegistry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: synapse %s", ErrTraitNotFound, name)
	}
	if entry.schemaVersion != SupportedSchemaVersion || entry.codecVersion != SupportedCodecVersion {
		return nil, fmt.Errorf("%w: synapse %s", ErrVersionMismatch, name)
	}
	return entry.factory(), nil
}

func SynapseTypes() []string {
	synapseRegistry.mu.RLock()
	defer synapseRegistry.mu.RUnlock()

	names := make([]string, 0, len(synapseRegistry.m))
	for n := range synapseRegistry.m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsKnownNeuron reports whether a neuron type tag is registered.
func IsKnownNeuron(name string) bool {
	_, err := LookupNeuron(name)
	return err == nil
}

func IsKnownSynapse(name string) bool {
	_, err := LookupSynapse(name)
	return err == nil
}

func resetRegistriesForTests() {
	neuronRegistry.mu.Lock()
	neuronRegistry.m = make(map[string]registeredNeuron)
	neuronRegistry.mu.Unlock()

	synapseRegistry.mu.Lock()
	synapseRegistry.m = make(map[string]registeredSynapse)
	synapseRegistry.mu.Unlock()

	initializeBuiltInTraits()
}
