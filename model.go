package tossup

import "fmt"

// ElectionModel is the fixed, ordered list of tossup regions of one election.
// The order pairs positionally with the choices passed to TallyVotes.
type ElectionModel struct {
	regions []*Region
}

func NewElectionModel(regions []*Region) *ElectionModel {
	return &ElectionModel{regions: append([]*Region(nil), regions...)}
}

func (m *ElectionModel) Regions() []*Region {
	return append([]*Region(nil), m.regions...)
}

// Len returns the number of tossup regions.
func (m *ElectionModel) Len() int {
	return len(m.regions)
}

// TotalWeight returns the number of votes at stake across all tossups.
func (m *ElectionModel) TotalWeight() int {
	return totalWeight(m.regions)
}

// TallyVotes credits regions[i] to choices[i] for every i. The ledger is owned
// exclusively by this call and is left untouched when the lengths differ.
func (m *ElectionModel) TallyVotes(choices []*Party, ledger *VoteLedger) error {
	if len(choices) != len(m.regions) {
		return fmt.Errorf("%w: got %d choices for %d regions", ErrChoicesMismatch, len(choices), len(m.regions))
	}
	for i, p := range choices {
		ledger.AssignState(p, m.regions[i])
	}
	return nil
}
