// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package sched

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/navwar/gomirror/pkg/fs"
)

type RunFunc func(ctx context.Context) (*fs.SyncOutput, error)

// Scheduler runs a synchronization repeatedly.
// The wait before the next run starts when the previous run completes, so runs never overlap.
type Scheduler struct {
	clock    clockwork.Clock
	interval time.Duration
	maxRuns  int
	source   string
	replica  string
	reporter fs.Reporter
	run      RunFunc
}

func (s *Scheduler) report(event fs.Event) {
	if s.reporter != nil {
		s.reporter.Report(event)
	}
}

func (s *Scheduler) stopped() error {
	s.report(fs.SyncStopped{})
	return nil
}

// Start runs until the context is cancelled or the maximum number of runs is reached.
// Errors from individual runs are reported and do not stop the schedule.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.New("interval must be greater than zero")
	}
	for runs := 0; s.maxRuns <= 0 || runs < s.maxRuns; {
		if ctx.Err() != nil {
			return s.stopped()
		}

		s.report(fs.SyncStarted{Source: s.source, Replica: s.replica})

		output, err := s.run(ctx)
		runs++

		if err != nil && ctx.Err() != nil {
			return s.stopped()
		}

		completed := fs.SyncCompleted{}
		if output != nil {
			completed.Actions = len(output.Actions)
			completed.Errors = len(output.Errors())
		}
		if err != nil {
			s.report(fs.ErrorOccurred{Op: "sync", Path: s.source, Err: err})
			completed.Errors++
		}

		last := s.maxRuns > 0 && runs >= s.maxRuns
		if !last {
			completed.Next = s.interval
		}
		s.report(completed)
		if last {
			break
		}

		select {
		case <-ctx.Done():
			return s.stopped()
		case <-s.clock.After(s.interval):
		}
	}
	return nil
}

type NewSchedulerInput struct {
	Clock    clockwork.Clock // defaults to the real clock
	Interval time.Duration
	MaxRuns  int // zero runs forever
	Source   string
	Replica  string
	Reporter fs.Reporter
	Run      RunFunc
}

func NewScheduler(input *NewSchedulerInput) *Scheduler {
	clock := input.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock:    clock,
		interval: input.Interval,
		maxRuns:  input.MaxRuns,
		source:   input.Source,
		replica:  input.Replica,
		reporter: input.Reporter,
		run:      input.Run,
	}
}
