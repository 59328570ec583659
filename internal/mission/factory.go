/*
Package mission
File: factory.go
Description:
    The Factory picks a mission kind uniformly at random and generates it.
    A failed generation discards the instance and tries again with a fresh
    one, up to MissionConfig.MaxAttempts times.
*/

package mission

import (
	"fmt"
	"log"
)

// Builder constructs an ungenerated mission of one kind.
type Builder func(employer string) Mission

// Factory creates generated missions.
type Factory struct {
	world    World
	rng      Rand
	builders [numKinds]Builder
}

// NewFactory returns a factory wired with the four standard kinds.
func NewFactory(w World, rng Rand) *Factory {
	return &Factory{
		world: w,
		rng:   rng,
		builders: [numKinds]Builder{
			KindPatrol:        NewPatrol,
			KindAssassination: NewAssassination,
			KindCargoDelivery: NewCargoDelivery,
			KindCourier:       NewCourier,
		},
	}
}

// SetBuilder replaces the constructor for one kind.
func (f *Factory) SetBuilder(k Kind, b Builder) {
	f.builders[k] = b
}

// Create returns a mission for employer whose generation succeeded.
// It fails with ErrUnknownEmployer or, after MaxAttempts failed generations,
// with ErrGenerationExhausted wrapping the last failure.
func (f *Factory) Create(employer string) (Mission, error) {
	if _, ok := f.world.Faction(employer); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEmployer, employer)
	}

	attempts := f.world.MissionConfig().MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		kind := Kind(f.rng.Intn(numKinds))
		m := f.builders[kind](employer)
		if err := m.Generate(f.world, f.rng); err != nil {
			lastErr = err
			continue
		}
		m.core().activate()
		return m, nil
	}
	log.Printf("MISSION: Generation for %s gave up after %d attempts: %v", employer, attempts, lastErr)
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrGenerationExhausted, attempts, lastErr)
}
