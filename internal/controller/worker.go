package controller

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/kpauljoseph/pdftool/pkg/models"
)

var (
	ErrNoSelection = errors.New("please select at least one PDF")
	ErrRunning     = errors.New("a run is already in progress")
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Run is a handle on one background run.
type Run struct {
	done   chan struct{}
	report *models.RunReport
	err    error
}

func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run has finished.
func (r *Run) Wait() (*models.RunReport, error) {
	<-r.done
	return r.report, r.err
}

// Report and Err are only meaningful after Done is closed.
func (r *Run) Report() *models.RunReport {
	return r.report
}

func (r *Run) Err() error {
	return r.err
}

// worker runs at most one job at a time on its own goroutine.
type worker struct {
	state atomic.Int32
}

func (w *worker) State() State {
	return State(w.state.Load())
}

func (w *worker) start(ctx context.Context, job func(ctx context.Context) (*models.RunReport, error)) (*Run, error) {
	for {
		current := w.state.Load()
		if State(current) == StateRunning {
			return nil, ErrRunning
		}
		if w.state.CompareAndSwap(current, int32(StateRunning)) {
			break
		}
	}

	run := &Run{done: make(chan struct{})}
	go func() {
		defer close(run.done)
		defer w.state.Store(int32(StateFinished))
		run.report, run.err = job(ctx)
	}()
	return run, nil
}
