package tossup

import (
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

// PartyID is the opaque identity of a Party. Ledgers key their maps by it, so
// two parties that share a display name never collide.
type PartyID uint64

var lastPartyID uint64

type Party struct {
	id   PartyID
	name string
}

// NewParty returns a party with a fresh identity.
func NewParty(name string) *Party {
	return &Party{id: PartyID(atomic.AddUint64(&lastPartyID, 1)), name: name}
}

func (p *Party) ID() PartyID {
	return p.id
}

func (p *Party) Name() string {
	return p.name
}

func (p *Party) String() string {
	return p.name
}

func (p *Party) MarshalLogObject(e zapcore.ObjectEncoder) error {
	e.AddUint64("id", uint64(p.id))
	e.AddString("name", p.name)
	return nil
}

type partyArray []*Party

func (a partyArray) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, p := range a {
		if err := e.AppendObject(p); err != nil {
			return err
		}
	}
	return nil
}
