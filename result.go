package tossup

import "time"

// SimulationRecord is a stored simulation run.
type SimulationRecord struct {
	ID           uint64           `json:"id"`
	CreatedAt    int64            `json:"created_at"` // unix milliseconds
	Election     string           `json:"election"`
	Seed         int64            `json:"seed"`
	Workers      int              `json:"workers"`
	Distribution DistributionSpec `json:"distribution"`
	Summary      *Summary         `json:"summary"`
}

func NewSimulationRecord(s *Simulator, distribution DistributionSpec, summary *Summary) *SimulationRecord {
	return &SimulationRecord{
		CreatedAt:    time.Now().UnixMilli(),
		Election:     s.election.Name,
		Seed:         s.opts.seed,
		Workers:      s.opts.workers,
		Distribution: distribution,
		Summary:      summary,
	}
}

// ResultStore keeps simulation records. Put assigns the record a new,
// increasing ID and returns it.
type ResultStore interface {
	Put(record *SimulationRecord) (uint64, error)
	Get(id uint64) (*SimulationRecord, error)
	List() ([]*SimulationRecord, error)
	Close() error
}
