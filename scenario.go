package tossup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type ScenarioParty struct {
	Name string `yaml:"name" json:"name"`
	Bias int    `yaml:"bias" json:"bias"`
}

type ScenarioRegion struct {
	Name   string `yaml:"name" json:"name"`
	Code   string `yaml:"code" json:"code"`
	Weight int    `yaml:"weight" json:"weight"`
}

// DistributionSpec selects how tossups are decided. Fixed awards every region
// to one party. Otherwise a Gaussian distributor is built either from Mean and
// StdDev or from Bias and Range (σ = Range/4). Favored and Other default to
// the first two parties of the election.
type DistributionSpec struct {
	Fixed   string   `yaml:"fixed,omitempty" json:"fixed,omitempty"`
	Favored string   `yaml:"favored,omitempty" json:"favored,omitempty"`
	Other   string   `yaml:"other,omitempty" json:"other,omitempty"`
	Mean    *float64 `yaml:"mean,omitempty" json:"mean,omitempty"`
	StdDev  *float64 `yaml:"stddev,omitempty" json:"stddev,omitempty"`
	Bias    *float64 `yaml:"bias,omitempty" json:"bias,omitempty"`
	Range   *float64 `yaml:"range,omitempty" json:"range,omitempty"`
}

// Factory resolves party names against e and builds the matching factory.
func (d DistributionSpec) Factory(e *Election) (DistributorFactory, error) {
	if d.Fixed != "" {
		if d.Favored != "" || d.Other != "" || d.Mean != nil || d.StdDev != nil || d.Bias != nil || d.Range != nil {
			return nil, fmt.Errorf("%w: fixed cannot be combined with a gaussian distribution", ErrInvalidScenario)
		}
		p, ok := e.Party(d.Fixed)
		if !ok {
			return nil, fmt.Errorf("%w: fixed party %q", ErrUnknownParty, d.Fixed)
		}
		return FixedDistributorFactory(p), nil
	}

	if len(e.Parties) < 2 {
		return nil, fmt.Errorf("%w: gaussian distribution needs two parties", ErrInvalidScenario)
	}
	favored, other := e.Parties[0], e.Parties[1]
	if d.Favored != "" {
		p, ok := e.Party(d.Favored)
		if !ok {
			return nil, fmt.Errorf("%w: favored party %q", ErrUnknownParty, d.Favored)
		}
		favored = p
	}
	if d.Other != "" {
		p, ok := e.Party(d.Other)
		if !ok {
			return nil, fmt.Errorf("%w: other party %q", ErrUnknownParty, d.Other)
		}
		other = p
	}
	if favored == other {
		return nil, fmt.Errorf("%w: favored and other party are both %q", ErrInvalidScenario, favored.name)
	}

	mean, stdDev := 0.0, 1.0
	if d.Range != nil {
		if d.Mean != nil || d.StdDev != nil {
			return nil, fmt.Errorf("%w: range cannot be combined with mean or stddev", ErrInvalidScenario)
		}
		if *d.Range <= 0 {
			return nil, fmt.Errorf("%w: range must be positive, got %v", ErrInvalidScenario, *d.Range)
		}
		if d.Bias != nil {
			mean = *d.Bias
		}
		stdDev = *d.Range / 4
	} else {
		if d.Bias != nil {
			return nil, fmt.Errorf("%w: bias requires range", ErrInvalidScenario)
		}
		if d.Mean != nil {
			mean = *d.Mean
		}
		if d.StdDev != nil {
			stdDev = *d.StdDev
		}
	}
	if stdDev <= 0 {
		return nil, fmt.Errorf("%w: stddev must be positive, got %v", ErrInvalidScenario, stdDev)
	}
	return GaussianDistributorFactory(mean, stdDev, favored, other), nil
}

// Scenario is the file form of an election and its distribution.
type Scenario struct {
	Name         string           `yaml:"name"`
	Parties      []ScenarioParty  `yaml:"parties"`
	Regions      []ScenarioRegion `yaml:"regions"`
	Distribution DistributionSpec `yaml:"distribution"`
}

func LoadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(b)
}

func ParseScenario(b []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	if len(s.Parties) < 2 {
		return fmt.Errorf("%w: at least two parties are required, got %d", ErrInvalidScenario, len(s.Parties))
	}
	names := map[string]struct{}{}
	for _, p := range s.Parties {
		if p.Name == "" {
			return fmt.Errorf("%w: party without a name", ErrInvalidScenario)
		}
		if _, ok := names[p.Name]; ok {
			return fmt.Errorf("%w: duplicate party %q", ErrInvalidScenario, p.Name)
		}
		if p.Bias < 0 {
			return fmt.Errorf("%w: party %q has negative bias", ErrInvalidScenario, p.Name)
		}
		names[p.Name] = struct{}{}
	}
	codes := map[string]struct{}{}
	for _, r := range s.Regions {
		if r.Code == "" {
			return fmt.Errorf("%w: region %q has no code", ErrInvalidScenario, r.Name)
		}
		if _, ok := codes[r.Code]; ok {
			return fmt.Errorf("%w: duplicate region code %q", ErrInvalidScenario, r.Code)
		}
		if r.Weight <= 0 {
			return fmt.Errorf("%w: region %s has weight %d", ErrInvalidScenario, r.Code, r.Weight)
		}
		codes[r.Code] = struct{}{}
	}
	return nil
}

// Build creates fresh parties and regions for the scenario. Parties are
// created in file order, which is also their registration order in ledgers.
func (s *Scenario) Build() (*Election, DistributorFactory, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	e := &Election{Name: s.Name, Bias: map[*Party]int{}}
	for _, sp := range s.Parties {
		p := NewParty(sp.Name)
		e.Parties = append(e.Parties, p)
		e.Bias[p] = sp.Bias
	}
	regions := make([]*Region, 0, len(s.Regions))
	for _, sr := range s.Regions {
		regions = append(regions, NewRegion(sr.Name, sr.Code, sr.Weight))
	}
	e.Model = NewElectionModel(regions)

	factory, err := s.Distribution.Factory(e)
	if err != nil {
		return nil, nil, err
	}
	return e, factory, nil
}
