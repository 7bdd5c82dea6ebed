package tossup

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalSample(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := 100000
	samples := make([]float64, n)
	sum := 0.0
	for i := range samples {
		samples[i] = NormalSample(rng, 0, 1)
		sum += samples[i]
	}
	mean := sum / float64(n)
	variance := 0.0
	for _, v := range samples {
		variance += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(variance / float64(n))

	assert.InDelta(t, 0, mean, 0.02)
	assert.InDelta(t, 1, stdDev, 0.02)
}

func TestNormalSampleCosineBranch(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	twin := rand.New(rand.NewSource(99))
	for i := 0; i < 1000; i++ {
		u := 1 - twin.Float64()
		v := twin.Float64()
		expected := math.Sqrt(-2*math.Log(u))*math.Cos(2*math.Pi*v)*1.5 - 0.25
		assert.Equal(t, expected, NormalSample(rng, -0.25, 1.5))
	}
	// exactly two draws per sample
	assert.Equal(t, twin.Int63(), rng.Int63())
}

func TestNormalSampleShifted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += NormalSample(rng, 5, 2)
	}
	assert.InDelta(t, 5, sum/float64(n), 0.05)
}

func TestFixedDistributor(t *testing.T) {
	d := NewFixedDistributor(Republican)
	for _, r := range DefaultTossups() {
		for i := 0; i < 100; i++ {
			assert.Same(t, Republican, d.Choose(r))
		}
	}
	assert.Same(t, Democrat, FixedDistributorFactory(Democrat)(1).Choose(nil))
}

func TestGaussianDistributor(t *testing.T) {
	region := DefaultTossups()[0]

	t.Run("far positive mean", func(t *testing.T) {
		d := NewGaussianDistributor(1000, 1, Republican, Democrat, rand.New(rand.NewSource(1)))
		for i := 0; i < 1000; i++ {
			assert.Same(t, Republican, d.Choose(region))
		}
	})

	t.Run("far negative mean", func(t *testing.T) {
		d := NewGaussianDistributor(-1000, 1, Republican, Democrat, rand.New(rand.NewSource(1)))
		for i := 0; i < 1000; i++ {
			assert.Same(t, Democrat, d.Choose(region))
		}
	})

	t.Run("win probability", func(t *testing.T) {
		d := GaussianDistributorFromRange(0.5, 2, Republican, Democrat, rand.New(rand.NewSource(3)))
		assert.Equal(t, 0.5, d.Mean())
		assert.Equal(t, 0.5, d.StdDev())
		expected := d.WinProbability()
		assert.InDelta(t, 0.8413, expected, 0.0001)

		n, favored := 100000, 0
		for i := 0; i < n; i++ {
			if d.Choose(region) == Republican {
				favored++
			}
		}
		assert.InDelta(t, expected, float64(favored)/float64(n), 0.01)
	})

	t.Run("even split", func(t *testing.T) {
		d := NewGaussianDistributor(0, 3, Republican, Democrat, rand.New(rand.NewSource(5)))
		assert.Equal(t, 0.5, d.WinProbability())
	})
}

func TestGaussianDistributorInvalidStdDev(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { NewGaussianDistributor(1, -1, Republican, Democrat, rng) })
	assert.Panics(t, func() { NewGaussianDistributor(0, 0, Republican, Democrat, rng) })
	assert.Panics(t, func() { NewGaussianDistributor(0, math.NaN(), Republican, Democrat, rng) })
	assert.Panics(t, func() { GaussianDistributorFromRange(0, 0, Republican, Democrat, rng) })
}

func TestGaussianDistributorFactorySeeds(t *testing.T) {
	factory := GaussianDistributorFactory(0, 1, Republican, Democrat)
	a, b := factory(11), factory(11)
	regions := DefaultTossups()
	for i := 0; i < 200; i++ {
		r := regions[i%len(regions)]
		assert.Same(t, a.Choose(r), b.Choose(r))
	}
}
