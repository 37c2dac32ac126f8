package uid

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	GeneratorRandom     = "random"
	GeneratorSequential = "sequential"
)

// Generator produces UIDs. Implementations must be safe for concurrent use.
type Generator interface {
	Next() UID
}

// RandomGenerator issues version 4 UUIDs.
type RandomGenerator struct{}

func (RandomGenerator) Next() UID {
	return UID{tag: uuid.New()}
}

// SequentialGenerator issues UIDs whose low 64 bits count up from a start value.
// The values read as small numbers in logs, which makes debugging sessions reproducible.
type SequentialGenerator struct {
	counter atomic.Uint64
}

func NewSequentialGenerator(start uint64) *SequentialGenerator {
	g := &SequentialGenerator{}
	g.Reset(start)
	return g
}

func (g *SequentialGenerator) Next() UID {
	value := g.counter.Add(1) - 1
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], value)
	return UID{tag: id}
}

// Reset restarts the sequence. A start of 0 is bumped to 1 so the nil UID is never issued.
func (g *SequentialGenerator) Reset(start uint64) {
	if start == 0 {
		start = 1
	}
	g.counter.Store(start)
}

// Advance raises the sequence so the next UID issued is at least start. It never moves the
// sequence backwards.
func (g *SequentialGenerator) Advance(start uint64) {
	if start == 0 {
		start = 1
	}
	for {
		current := g.counter.Load()
		if current >= start || g.counter.CompareAndSwap(current, start) {
			return
		}
	}
}

var processSequence SequentialGenerator

// ProcessSequentialGenerator returns the sequential generator shared by the whole process,
// advanced to at least start. Every caller draws from one counter, so sequential UIDs stay
// unique across clients.
func ProcessSequentialGenerator(start uint64) *SequentialGenerator {
	processSequence.Advance(start)
	return &processSequence
}

var generatorState = struct {
	mu  sync.RWMutex
	gen Generator
}{
	gen: RandomGenerator{},
}

func defaultGenerator() Generator {
	generatorState.mu.RLock()
	defer generatorState.mu.RUnlock()
	return generatorState.gen
}

// SetDefaultGenerator replaces the generator used by New and returns the previous one.
// A nil generator restores RandomGenerator.
func SetDefaultGenerator(gen Generator) Generator {
	if gen == nil {
		gen = RandomGenerator{}
	}
	generatorState.mu.Lock()
	defer generatorState.mu.Unlock()
	previous := generatorState.gen
	generatorState.gen = gen
	return previous
}
