package tossup

import (
	"log"
	"math/rand"
)

// Distributor decides which party wins a region.
type Distributor interface {
	Choose(region *Region) *Party
}

// DistributorFactory builds an independent Distributor for one simulation
// worker. Distributors hold their own random source and must not be shared
// between goroutines.
type DistributorFactory func(seed int64) Distributor

// FixedDistributor awards every region to the same party.
type FixedDistributor struct {
	party *Party
}

func NewFixedDistributor(party *Party) *FixedDistributor {
	return &FixedDistributor{party: party}
}

func (d *FixedDistributor) Choose(*Region) *Party {
	return d.party
}

func FixedDistributorFactory(party *Party) DistributorFactory {
	return func(int64) Distributor {
		return NewFixedDistributor(party)
	}
}

// GaussianDistributor draws z from N(mean, stdDev²) for every region and awards
// it to favored when z > 0, to other otherwise.
//
// The threshold is the distribution's zero, not its mean, so moving the mean
// moves the expected value and the win probability together:
// P(favored) = Φ(mean/stdDev). A mean of zero is an even split.
type GaussianDistributor struct {
	mean    float64
	stdDev  float64
	favored *Party
	other   *Party
	rng     *rand.Rand
}

// NewGaussianDistributor panics unless stdDev is positive.
func NewGaussianDistributor(mean, stdDev float64, favored, other *Party, rng *rand.Rand) *GaussianDistributor {
	if !(stdDev > 0) {
		log.Panicf("gaussian distributor: stddev must be positive, got %v", stdDev)
	}
	return &GaussianDistributor{mean: mean, stdDev: stdDev, favored: favored, other: other, rng: rng}
}

// GaussianDistributorFromRange centers the distribution on bias and sizes it so
// that about 95% of draws (±2σ) fall inside a window of the given width.
func GaussianDistributorFromRange(bias, width float64, favored, other *Party, rng *rand.Rand) *GaussianDistributor {
	radius := width / 2
	return NewGaussianDistributor(bias, radius/2, favored, other, rng)
}

func (d *GaussianDistributor) Mean() float64 {
	return d.mean
}

func (d *GaussianDistributor) StdDev() float64 {
	return d.stdDev
}

// WinProbability is the chance that a single region goes to the favored party.
func (d *GaussianDistributor) WinProbability() float64 {
	return normalCDF(d.mean / d.stdDev)
}

func (d *GaussianDistributor) Choose(*Region) *Party {
	if NormalSample(d.rng, d.mean, d.stdDev) > 0 {
		return d.favored
	}
	return d.other
}

func GaussianDistributorFactory(mean, stdDev float64, favored, other *Party) DistributorFactory {
	return func(seed int64) Distributor {
		return NewGaussianDistributor(mean, stdDev, favored, other, rand.New(rand.NewSource(seed)))
	}
}
