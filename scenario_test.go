package tossup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testingScenarioYAML = `
name: midterm
parties:
  - name: Blue
    bias: 200
  - name: Red
    bias: 210
regions:
  - {name: Ohio, code: OH, weight: 17}
  - {name: Florida, code: FL, weight: 30}
  - {name: Iowa, code: IA, weight: 6}
distribution:
  favored: Red
  other: Blue
  bias: 0.25
  range: 2
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(testingScenarioYAML))
	require.NoError(t, err)
	assert.Equal(t, "midterm", s.Name)
	assert.Len(t, s.Parties, 2)
	assert.Len(t, s.Regions, 3)
	assert.Equal(t, "Red", s.Distribution.Favored)
	assert.Equal(t, 0.25, *s.Distribution.Bias)
	assert.Equal(t, 2.0, *s.Distribution.Range)
	assert.Nil(t, s.Distribution.Mean)

	e, factory, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 53, e.Model.TotalWeight())
	blue, ok := e.Party("Blue")
	require.True(t, ok)
	red, ok := e.Party("Red")
	require.True(t, ok)
	assert.Equal(t, 200, e.Bias[blue])
	assert.Less(t, uint64(blue.ID()), uint64(red.ID()))

	d, ok := factory(1).(*GaussianDistributor)
	require.True(t, ok)
	assert.Equal(t, 0.25, d.Mean())
	assert.Equal(t, 0.5, d.StdDev())
	assert.Same(t, red, d.favored)
	assert.Same(t, blue, d.other)

	ledger := StochasticElection(e.Model, NewFixedDistributor(blue), e.Bias)
	assert.Equal(t, 253, ledger.Votes(blue))
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testingScenarioYAML), 0644))
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "midterm", s.Name)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseScenarioInvalid(t *testing.T) {
	testCases := map[string]string{
		"one party": `
parties: [{name: Blue, bias: 1}]
`,
		"duplicate party": `
parties: [{name: Blue, bias: 1}, {name: Blue, bias: 2}]
`,
		"negative bias": `
parties: [{name: Blue, bias: -1}, {name: Red, bias: 2}]
`,
		"duplicate region": `
parties: [{name: Blue}, {name: Red}]
regions: [{name: Ohio, code: OH, weight: 1}, {name: Oh, code: OH, weight: 2}]
`,
		"zero weight": `
parties: [{name: Blue}, {name: Red}]
regions: [{name: Ohio, code: OH, weight: 0}]
`,
		"malformed": `parties: {`,
		"unknown field": `
parties: [{name: Blue}, {name: Red}]
distribution: {stdev: 3}
`,
		"empty": ``,
	}
	for name, doc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScenario([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestDistributionSpecFactory(t *testing.T) {
	e := DefaultElection()

	t.Run("default", func(t *testing.T) {
		factory, err := DistributionSpec{}.Factory(e)
		require.NoError(t, err)
		d := factory(1).(*GaussianDistributor)
		assert.Equal(t, 0.0, d.Mean())
		assert.Equal(t, 1.0, d.StdDev())
		assert.Same(t, Republican, d.favored)
		assert.Same(t, Democrat, d.other)
	})

	t.Run("fixed", func(t *testing.T) {
		factory, err := DistributionSpec{Fixed: "Democrat"}.Factory(e)
		require.NoError(t, err)
		assert.Same(t, Democrat, factory(1).Choose(nil))
	})

	t.Run("mean and stddev", func(t *testing.T) {
		factory, err := DistributionSpec{Mean: Ptr(-0.3), StdDev: Ptr(2.0), Favored: "Democrat", Other: "Republican"}.Factory(e)
		require.NoError(t, err)
		d := factory(1).(*GaussianDistributor)
		assert.Equal(t, -0.3, d.Mean())
		assert.Equal(t, 2.0, d.StdDev())
		assert.Same(t, Democrat, d.favored)
	})

	errCases := []struct {
		name string
		spec DistributionSpec
		err  error
	}{
		{"unknown fixed", DistributionSpec{Fixed: "Whig"}, ErrUnknownParty},
		{"unknown favored", DistributionSpec{Favored: "Whig"}, ErrUnknownParty},
		{"same party", DistributionSpec{Favored: "Democrat", Other: "Democrat"}, ErrInvalidScenario},
		{"range with mean", DistributionSpec{Range: Ptr(2.0), Mean: Ptr(0.1)}, ErrInvalidScenario},
		{"bias without range", DistributionSpec{Bias: Ptr(0.1)}, ErrInvalidScenario},
		{"zero range", DistributionSpec{Range: Ptr(0.0)}, ErrInvalidScenario},
		{"fixed with range", DistributionSpec{Fixed: "Republican", Range: Ptr(-5.0), StdDev: Ptr(-1.0)}, ErrInvalidScenario},
		{"fixed with favored", DistributionSpec{Fixed: "Republican", Favored: "Democrat"}, ErrInvalidScenario},
		{"zero stddev", DistributionSpec{StdDev: Ptr(0.0)}, ErrInvalidScenario},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.spec.Factory(e)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
