package nn

import (
	"math"
	"math/rand/v2"

	"github.com/born-ml/densenet/internal/matrix"
)

// Initializer fills a freshly created weight matrix of shape
// (fanOut, fanIn). It must not change the shape.
type Initializer func(weights *matrix.Matrix, fanIn, fanOut int, rng *rand.Rand) error

// Xavier (Glorot) initialization for weights.
//
// Draws every weight from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))),
// which keeps activation variance roughly constant across layers.
func Xavier(weights *matrix.Matrix, fanIn, fanOut int, rng *rand.Rand) error {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return weights.RandomizeFrom(rng, -bound, bound)
}

// Zeros leaves every weight at zero.
func Zeros(weights *matrix.Matrix, _, _ int, _ *rand.Rand) error {
	return weights.Fill(0)
}

// Uniform returns an Initializer drawing from U(min, max).
func Uniform(min, max float64) Initializer {
	return func(weights *matrix.Matrix, _, _ int, rng *rand.Rand) error {
		return weights.RandomizeFrom(rng, min, max)
	}
}

// newRand returns a generator seeded with seed, or a randomly seeded one
// when seed is zero.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		//nolint:gosec // weight initialization, not security sensitive
		seed = rand.Uint64()
	}
	//nolint:gosec // weight initialization, not security sensitive
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
