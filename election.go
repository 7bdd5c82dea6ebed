package tossup

// Election bundles the static inputs of a tally: the parties in display order,
// the tossup model and the starting bias. It is shared read-only between
// trials; every trial builds its own ledger from it.
type Election struct {
	Name    string
	Parties []*Party
	Model   *ElectionModel
	Bias    map[*Party]int
}

// Party looks a party up by display name. With duplicate names the first one
// in display order wins.
func (e *Election) Party(name string) (*Party, bool) {
	for _, p := range e.Parties {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

func (e *Election) NewLedger() *VoteLedger {
	return NewVoteLedger(e.Bias)
}
