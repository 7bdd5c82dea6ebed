package tossup

import (
	"encoding/json"
	"fmt"
	"log"

	"go.uber.org/zap/zapcore"
)

// Region is a contested unit (a tossup state) worth a fixed number of votes.
// Regions are immutable and are passed around by pointer; the canonical list
// hands out the same pointer on every lookup.
type Region struct {
	name   string
	code   string
	weight int
}

func NewRegion(name, code string, weight int) *Region {
	if weight <= 0 {
		log.Panicf("region %s: weight must be a positive integer, got %d", code, weight)
	}
	return &Region{name: name, code: code, weight: weight}
}

func (r *Region) Name() string {
	return r.name
}

func (r *Region) Code() string {
	return r.code
}

func (r *Region) Weight() int {
	return r.weight
}

func (r *Region) String() string {
	return fmt.Sprintf("%s(%d)", r.code, r.weight)
}

type regionJSON struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Weight int    `json:"weight"`
}

func (r *Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(regionJSON{Name: r.name, Code: r.code, Weight: r.weight})
}

func (r *Region) MarshalLogObject(e zapcore.ObjectEncoder) error {
	e.AddString("name", r.name)
	e.AddString("code", r.code)
	e.AddInt("weight", r.weight)
	return nil
}

// totalWeight sums the weight of every region in regions.
func totalWeight(regions []*Region) int {
	sum := 0
	for _, r := range regions {
		sum += r.weight
	}
	return sum
}
