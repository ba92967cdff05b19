package matrix

import (
	"fmt"
	"math/rand/v2"
)

// Randomize fills m with values drawn uniformly from [min, max).
func (m *Matrix) Randomize(min, max float64) error {
	return m.RandomizeFrom(nil, min, max)
}

// RandomizeFrom is Randomize with an explicit source. A nil rng uses the
// global generator.
func (m *Matrix) RandomizeFrom(rng *rand.Rand, min, max float64) error {
	if !m.IsValid() {
		return fmt.Errorf("matrix: randomize: %w", ErrStructuralInvalid)
	}
	if min > max {
		return fmt.Errorf("matrix: randomize: min %g > max %g: %w", min, max, ErrInvalidArgument)
	}
	//nolint:gosec // weight initialization, not security sensitive
	next := rand.Float64
	if rng != nil {
		next = rng.Float64
	}
	span := max - min
	for i := range m.data {
		m.data[i] = min + next()*span
	}
	return nil
}
