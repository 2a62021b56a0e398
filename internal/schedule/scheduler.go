// Package schedule implements the three-phase scheduler: precompute and
// postcompute run once over the whole DataFrame with no focused row;
// compute runs once per primary-index row.
package schedule

import (
	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginelog"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
	"github.com/flowtable/compute/internal/registry"
	"github.com/flowtable/compute/internal/resolve"
)

// Scheduler drives a ComputeConfig over a DataFrame. It is not safe for
// concurrent use on one DataFrame: the scheduler is the sole writer and
// is itself single-threaded.
type Scheduler struct {
	DataFrame *dataframe.DataFrame
	Registry  *registry.Registry
	Resolver  *resolve.Resolver
	Config    ifacecfg.ComputeConfig
	Log       *enginelog.Logger
}

// New constructs a Scheduler. log may be nil, in which case phase/step
// tracing is silently dropped.
func New(df *dataframe.DataFrame, reg *registry.Registry, resolver *resolve.Resolver, cfg ifacecfg.ComputeConfig, log *enginelog.Logger) *Scheduler {
	return &Scheduler{DataFrame: df, Registry: reg, Resolver: resolver, Config: cfg, Log: log}
}

func (s *Scheduler) logPhase(name string) {
	if s.Log != nil {
		s.Log.PhaseBoundary(name)
	}
}

// runWholeDataset executes a list of steps once with no focused row
// (precompute/postcompute).
func (s *Scheduler) runWholeDataset(steps []ifacecfg.ComputeSpec, phase string) error {
	s.DataFrame.ClearFocus()
	for i, step := range steps {
		stepCtx := enginerr.StepContext{Index: i, Name: step.Function}
		if err := s.executeStep(step, stepCtx); err != nil {
			return err
		}
	}
	return nil
}

// runComputeRow executes the compute-phase steps for a single focused
// primary row (the compute phase, and the per-row body of Run).
func (s *Scheduler) runComputeRow(primary string) error {
	if err := s.DataFrame.SetFocus(primary); err != nil {
		return err
	}
	for i, step := range s.Config.Compute {
		stepCtx := enginerr.StepContext{Index: i, Name: step.Function}
		if err := s.executeStep(step, stepCtx); err != nil {
			return err
		}
	}
	return nil
}

// RunAll iterates the compute phase over every primary row, wrapped by a
// single precompute pass and a single postcompute pass.
func (s *Scheduler) RunAll() error {
	s.logPhase("precompute")
	if err := s.runWholeDataset(s.Config.Precompute, "precompute"); err != nil {
		return err
	}

	s.logPhase("compute")
	for _, primary := range s.DataFrame.PrimaryIndex() {
		if err := s.runComputeRow(primary); err != nil {
			return err
		}
	}

	s.logPhase("postcompute")
	return s.runWholeDataset(s.Config.Postcompute, "postcompute")
}

// Run executes the compute phase for the currently focused row only;
// precompute and postcompute are not re-run.
func (s *Scheduler) Run() error {
	primary := s.DataFrame.FocusedPrimary()
	if primary == "" {
		return &enginerr.ResolutionError{Msg: "run: no row is focused"}
	}
	return s.runComputeRow(primary)
}
