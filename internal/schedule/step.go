package schedule

import (
	"fmt"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
	"github.com/flowtable/compute/internal/registry"
)

// currentValue returns the target column's current cell value, treating an
// as-yet-uncreated column the same as a missing cell: a step may name a
// field that autocache has not yet materialized.
func currentValue(df *dataframe.DataFrame, name string) any {
	v, err := df.GetValue(name)
	if err != nil {
		return nil
	}
	return v
}

// executeStep implements the refresh gate and mode logic, the multi-output
// fan-out, and the side-effect rule.
func (s *Scheduler) executeStep(step ifacecfg.ComputeSpec, stepCtx enginerr.StepContext) error {
	entry, err := s.Registry.Lookup(step.Function)
	if err != nil {
		return &enginerr.ResolutionError{Step: stepCtx, Msg: "unknown function: " + step.Function}
	}

	args, err := s.Resolver.Resolve(s.DataFrame, entry, step.StepArgs, stepCtx)
	if err != nil {
		return err
	}

	if step.Field.IsSideEffect() {
		// Side-effect steps always run; their return value is discarded.
		_, err := entry.Impl(&registry.Context{DataFrame: s.DataFrame, Registry: s.Registry}, args)
		return err
	}

	targets := step.Field.Names
	missing := false
	for _, name := range targets {
		if dataframe.IsMissing(currentValue(s.DataFrame, name)) {
			missing = true
			break
		}
	}

	shouldRun := step.Refresh || missing || step.Mode == ifacecfg.Append || step.Mode == ifacecfg.Prepend
	if !shouldRun {
		return nil
	}

	result, err := entry.Impl(&registry.Context{DataFrame: s.DataFrame, Registry: s.Registry}, args)
	if err != nil {
		return err
	}

	var values []any
	if step.Field.IsMulti() {
		tuple, ok := result.([]any)
		if !ok || len(tuple) != len(targets) {
			got := -1
			if ok {
				got = len(tuple)
			}
			return &enginerr.ShapeError{Step: stepCtx, Expected: len(targets), Got: got}
		}
		values = tuple
	} else {
		values = []any{result}
	}

	shouldWrite := step.Mode == ifacecfg.Append || step.Mode == ifacecfg.Prepend || step.Refresh || missing
	if !shouldWrite {
		return nil
	}

	for i, name := range targets {
		if err := s.writeTarget(name, values[i], step.Mode, step.Separator, stepCtx); err != nil {
			return err
		}
	}
	return nil
}

// writeTarget applies one (target_column, value) write under mode policy,
// skipping immutable targets with a warning instead of failing the step.
func (s *Scheduler) writeTarget(name string, value any, mode ifacecfg.Mode, separator string, stepCtx enginerr.StepContext) error {
	mutable, err := s.DataFrame.IsMutable(name)
	if err != nil {
		// Unknown target column: autocache will create it as a mutable
		// cache column on write.
		mutable = true
	}
	if !mutable {
		if s.Log != nil {
			s.Log.MutabilityWarning(fmt.Sprintf("step %d (%s): target %q is immutable, write skipped", stepCtx.Index, stepCtx.Name, name))
		}
		return nil
	}

	switch mode {
	case ifacecfg.Replace:
		return s.DataFrame.SetValue(name, value)

	case ifacecfg.Append:
		current := currentValue(s.DataFrame, name)
		if dataframe.IsMissing(current) {
			return s.DataFrame.SetValue(name, value)
		}
		return s.DataFrame.SetValue(name, fmt.Sprintf("%v%s%v", current, separator, value))

	case ifacecfg.Prepend:
		current := currentValue(s.DataFrame, name)
		if dataframe.IsMissing(current) {
			return s.DataFrame.SetValue(name, value)
		}
		return s.DataFrame.SetValue(name, fmt.Sprintf("%v%s%v", value, separator, current))

	default:
		return &enginerr.ConfigError{Step: stepCtx, Msg: fmt.Sprintf("invalid mode: %q", mode)}
	}
}
