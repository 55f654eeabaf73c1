package domain

import (
	"fmt"
	"time"
)

type Stage string

const (
	StageModels     Stage = "models"
	StageEnrichment Stage = "enrichment"
	StageShops      Stage = "shops"
	StageListings   Stage = "listings"
)

// Master reports whether later stages depend on this stage's output.
func (s Stage) Master() bool {
	return s == StageModels || s == StageShops
}

type PhaseStatus string

const (
	PhaseSucceeded PhaseStatus = "succeeded"
	PhasePartial   PhaseStatus = "partial"
	PhaseFailed    PhaseStatus = "failed"
	PhaseSkipped   PhaseStatus = "skipped"
)

// UnitFailure names a unit that did not succeed and why.
type UnitFailure struct {
	Unit     string
	Attempts int
	Err      error
}

type PhaseReport struct {
	Stage       Stage
	Site        string
	Status      PhaseStatus
	Units       int
	Succeeded   int
	Failures    []UnitFailure
	Err         error
	Duration    time.Duration
	ListingSync *SyncStats
}

func (p PhaseReport) String() string {
	name := string(p.Stage)
	if p.Site != "" {
		name = p.Site + "/" + name
	}
	return fmt.Sprintf("%s: %s (%d/%d units)", name, p.Status, p.Succeeded, p.Units)
}

type RunReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Phases     []PhaseReport
	Aborted    bool
}

// Failed returns the phases that did not fully succeed.
func (r *RunReport) Failed() []PhaseReport {
	var failed []PhaseReport
	for _, p := range r.Phases {
		if p.Status == PhaseFailed || p.Status == PhasePartial {
			failed = append(failed, p)
		}
	}
	return failed
}
