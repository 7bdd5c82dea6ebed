package tossup

type StandingReport struct {
	Party   string   `json:"party"`
	Votes   int      `json:"votes"`
	Bias    int      `json:"bias"`
	Regions []string `json:"regions"`
}

// LedgerReport is a read-only snapshot of a tallied ledger.
type LedgerReport struct {
	Winner    string           `json:"winner,omitempty"`
	Tie       bool             `json:"tie"`
	Standings []StandingReport `json:"standings"`
}

func NewLedgerReport(l *VoteLedger) LedgerReport {
	report := LedgerReport{Standings: []StandingReport{}}
	if winner, ok := l.Winner(); ok {
		report.Winner = winner.name
	} else {
		report.Tie = true
	}
	for _, s := range l.Standings() {
		regions, _ := l.StatesAssignedTo(s.Party)
		codes := make([]string, 0, len(regions))
		for _, r := range regions {
			codes = append(codes, r.code)
		}
		report.Standings = append(report.Standings, StandingReport{
			Party:   s.Party.name,
			Votes:   s.Votes,
			Bias:    l.Bias(s.Party),
			Regions: codes,
		})
	}
	return report
}
