// Package persistence saves finished runs and benchmark reports as JSON documents.
package persistence

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/subsetsum/benchmark"
	"github.com/lixenwraith/subsetsum/driver"
	"github.com/lixenwraith/subsetsum/genetic/tracking"
)

// RunDTO is the serializable record of one solver run
type RunDTO struct {
	ID                 string                `json:"id"`
	Mode               string                `json:"mode"`
	Target             *decimal.Decimal      `json:"target,omitempty"`
	Generation         int                   `json:"generation"`
	BestFitness        decimal.Decimal       `json:"best_fitness"`
	Feasible           bool                  `json:"feasible"`
	ThresholdSatisfied bool                  `json:"threshold_satisfied"`
	Best               [][]decimal.Decimal   `json:"best"`
	ElapsedSeconds     float64               `json:"elapsed_seconds"`
	Stats              tracking.MetricBundle `json:"stats,omitempty"`
}

// ReportDTO is the serializable benchmark report
type ReportDTO struct {
	ID             string   `json:"id"`
	Mode           string   `json:"mode"`
	Solved         int      `json:"solved"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
	Runs           []RunDTO `json:"runs"`
}

// FromOutcome converts a driven run; a zero target is omitted
func FromOutcome(id, mode string, out driver.Outcome, target decimal.Decimal, elapsed time.Duration, stats tracking.MetricBundle) RunDTO {
	dto := RunDTO{
		ID:                 id,
		Mode:               mode,
		Generation:         out.Generation,
		BestFitness:        out.BestFitness,
		Feasible:           out.Feasible(),
		ThresholdSatisfied: out.ThresholdSatisfied,
		Best:               out.Best,
		ElapsedSeconds:     elapsed.Seconds(),
		Stats:              stats,
	}
	if !target.IsZero() {
		dto.Target = &target
	}
	return dto
}

// FromReport converts a benchmark report
func FromReport(r *benchmark.Report) ReportDTO {
	if r == nil {
		return ReportDTO{}
	}

	dto := ReportDTO{
		ID:             r.ID.String(),
		Mode:           r.Mode,
		Solved:         r.Solved(),
		ElapsedSeconds: r.Elapsed.Seconds(),
		Runs:           make([]RunDTO, len(r.Runs)),
	}

	for i, run := range r.Runs {
		dto.Runs[i] = RunDTO{
			ID:                 run.ID.String(),
			Mode:               r.Mode,
			Generation:         run.Generations,
			BestFitness:        run.BestFitness,
			Feasible:           run.Feasible,
			ThresholdSatisfied: run.Solved,
			ElapsedSeconds:     run.Elapsed.Seconds(),
			Stats:              run.Stats,
		}
		if !run.Target.IsZero() {
			target := run.Target
			dto.Runs[i].Target = &target
		}
	}

	return dto
}
