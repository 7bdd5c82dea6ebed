package tossup

// Canonical parties. Everything in this package compares parties by identity,
// so callers should reuse these values rather than build new ones by name.
var (
	Republican = NewParty("Republican")
	Democrat   = NewParty("Democrat")
)

var defaultTossups SingleFlight[[]*Region]

// DefaultTossups returns the canonical tossup states. The regions are shared
// and read-only; the returned slice is a fresh copy.
func DefaultTossups() []*Region {
	regions := defaultTossups.Do(func() []*Region {
		return []*Region{
			NewRegion("Arizona", "AZ", 11),
			NewRegion("Georgia", "GA", 16),
			NewRegion("North Carolina", "NC", 16),
			NewRegion("Nevada", "NV", 6),
			NewRegion("Pennsylvania", "PA", 19),
			NewRegion("Wisconsin", "WI", 10),
			NewRegion("Michigan", "MI", 15),
		}
	})
	return append([]*Region(nil), regions...)
}

// DefaultBias returns the votes each canonical party holds outside the tossups.
func DefaultBias() map[*Party]int {
	return map[*Party]int{
		Republican: 219,
		Democrat:   226,
	}
}

// DefaultElection wires the canonical parties, tossups and bias together.
func DefaultElection() *Election {
	return &Election{
		Name:    "default",
		Parties: []*Party{Republican, Democrat},
		Model:   NewElectionModel(DefaultTossups()),
		Bias:    DefaultBias(),
	}
}
