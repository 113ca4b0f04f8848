package models

import (
	"time"

	"github.com/kpauljoseph/pdftool/pkg/logger"
)

type Operation string

const (
	OperationRotate Operation = "rotate"
	OperationMerge  Operation = "merge"
)

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusNotFound  Status = "not-found"
)

// Outcome records what happened to a single input file.
type Outcome struct {
	Path       string
	Name       string
	Status     Status
	Exempt     bool
	Rotated    int
	Pages      int
	SizeBefore int64
	SizeAfter  int64
	Err        error
}

// Reduction is the size saving against the source in percent. Negative values
// mean the output grew.
func (o Outcome) Reduction() float64 {
	if o.SizeBefore <= 0 {
		return 0
	}
	return (1 - float64(o.SizeAfter)/float64(o.SizeBefore)) * 100
}

func (o Outcome) OK() bool {
	return o.Status == StatusSucceeded
}

type RunReport struct {
	Operation Operation
	Output    string
	Pages     int
	Size      int64
	StartTime time.Time
	EndTime   time.Time
	Outcomes  []Outcome
}

func (r *RunReport) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

func (r *RunReport) Succeeded() int {
	return r.count(StatusSucceeded)
}

func (r *RunReport) Failed() int {
	return r.count(StatusFailed)
}

func (r *RunReport) NotFound() int {
	return r.count(StatusNotFound)
}

func (r *RunReport) count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func (r *RunReport) TimeTaken() time.Duration {
	return r.EndTime.Sub(r.StartTime).Round(time.Millisecond)
}

func (r *RunReport) Print(log *logger.Logger) {
	log.Info("Run complete (%s):", r.Operation)
	log.Info("- Files processed: %d", len(r.Outcomes))
	log.Info("- Succeeded: %d", r.Succeeded())
	log.Info("- Failed: %d", r.Failed())
	if n := r.NotFound(); n > 0 {
		log.Info("- Not found: %d", n)
	}
	log.Info("- Output: %s", r.Output)
	log.Info("- Time taken: %v", r.TimeTaken())

	for _, o := range r.Outcomes {
		switch {
		case o.Err != nil:
			log.Error("  %s: %v", o.Name, o.Err)
		case log.IsVerbose():
			log.Debug("  %s: %d pages, %d bytes", o.Name, o.Pages, o.SizeAfter)
		}
	}
}
