package tossup

import (
	"log"
	"sort"
)

// regionSet keeps insertion order so that readers get a stable listing.
type regionSet struct {
	members map[*Region]struct{}
	order   []*Region
}

func newRegionSet() *regionSet {
	return &regionSet{members: map[*Region]struct{}{}}
}

func (s *regionSet) add(r *Region) {
	if _, ok := s.members[r]; ok {
		return
	}
	s.members[r] = struct{}{}
	s.order = append(s.order, r)
}

func (s *regionSet) remove(r *Region) {
	if _, ok := s.members[r]; !ok {
		return
	}
	delete(s.members, r)
	for i := range s.order {
		if s.order[i] == r {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *regionSet) weight() int {
	return totalWeight(s.order)
}

// Standing is one party's vote total at the time it was read.
type Standing struct {
	Party *Party
	Votes int
}

// VoteLedger accumulates the regions credited to each party on top of a fixed
// starting bias. A ledger is built for a single tally and is not safe for
// concurrent use. Callers must not credit one region to two parties.
type VoteLedger struct {
	parties     map[PartyID]*Party
	order       []PartyID
	bias        map[PartyID]int
	assignments map[PartyID]*regionSet
}

// NewVoteLedger copies bias and registers every party it names with an empty
// assignment set.
func NewVoteLedger(bias map[*Party]int) *VoteLedger {
	l := &VoteLedger{
		parties:     map[PartyID]*Party{},
		bias:        map[PartyID]int{},
		assignments: map[PartyID]*regionSet{},
	}
	parties := make([]*Party, 0, len(bias))
	for p := range bias {
		parties = append(parties, p)
	}
	// Map iteration order is random; IDs follow construction order.
	sort.Slice(parties, func(i, j int) bool { return parties[i].id < parties[j].id })
	for _, p := range parties {
		l.bias[p.id] = bias[p]
		l.register(p)
	}
	return l
}

func (l *VoteLedger) register(p *Party) *regionSet {
	if set, ok := l.assignments[p.id]; ok {
		return set
	}
	set := newRegionSet()
	l.parties[p.id] = p
	l.order = append(l.order, p.id)
	l.assignments[p.id] = set
	return set
}

// Bias returns the starting votes of p, zero if p has none.
func (l *VoteLedger) Bias(p *Party) int {
	return l.bias[p.id]
}

// Votes returns the bias of p plus the weight of every region credited to it.
// A party the ledger has never seen has zero votes.
func (l *VoteLedger) Votes(p *Party) int {
	votes := l.bias[p.id]
	if set, ok := l.assignments[p.id]; ok {
		votes += set.weight()
	}
	return votes
}

// AssignState credits r to p, registering p if needed. Assigning the same
// region twice has no further effect.
func (l *VoteLedger) AssignState(p *Party, r *Region) {
	l.register(p).add(r)
}

// UnassignState removes r from the regions credited to p. p must already be
// registered with the ledger, either through the bias map or AssignState.
func (l *VoteLedger) UnassignState(p *Party, r *Region) {
	set, ok := l.assignments[p.id]
	if !ok {
		log.Panicf("unassign %s: party %q is not registered with the ledger", r.code, p.name)
	}
	set.remove(r)
}

// StatesAssignedTo returns the regions credited to p in assignment order. The
// second return value reports whether p is registered at all.
func (l *VoteLedger) StatesAssignedTo(p *Party) ([]*Region, bool) {
	set, ok := l.assignments[p.id]
	if !ok {
		return nil, false
	}
	return append([]*Region(nil), set.order...), true
}

// DiffParty returns Votes(a) - Votes(b); positive means a leads.
func (l *VoteLedger) DiffParty(a, b *Party) int {
	return l.Votes(a) - l.Votes(b)
}

// Parties returns the registered parties in registration order.
func (l *VoteLedger) Parties() []*Party {
	parties := make([]*Party, 0, len(l.order))
	for _, id := range l.order {
		parties = append(parties, l.parties[id])
	}
	return parties
}

// Standings returns every registered party's total, highest first. Equal
// totals keep registration order.
func (l *VoteLedger) Standings() []Standing {
	standings := make([]Standing, 0, len(l.order))
	for _, id := range l.order {
		p := l.parties[id]
		standings = append(standings, Standing{Party: p, Votes: l.Votes(p)})
	}
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Votes > standings[j].Votes })
	return standings
}

// Winner returns the party with strictly the most votes. Only the top two
// totals are compared: if they are equal there is no winner, however the
// remaining parties rank.
func (l *VoteLedger) Winner() (*Party, bool) {
	standings := l.Standings()
	switch len(standings) {
	case 0:
		return nil, false
	case 1:
		return standings[0].Party, true
	}
	if standings[0].Votes == standings[1].Votes {
		return nil, false
	}
	return standings[0].Party, true
}
