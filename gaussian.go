package tossup

import (
	"math"
	"math/rand"
)

// NormalSample draws from N(mean, stdDev²) with the Box-Muller transform. Only
// the cosine output is used; the sine output is discarded on every call.
func NormalSample(rng *rand.Rand, mean, stdDev float64) float64 {
	u := 1 - rng.Float64() // (0, 1], keeps log away from zero
	v := rng.Float64()
	z := math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
	return z*stdDev + mean
}

// normalCDF is the standard normal cumulative distribution function.
func normalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
