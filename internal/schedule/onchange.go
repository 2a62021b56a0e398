package schedule

import (
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// referencesColumn reports whether step's field list, row_args, or
// view_args reference column. view_args are matched
// by substring against the raw Liquid template text, since the template
// may reference the column as `{{ column }}` inside a larger string.
func referencesColumn(step ifacecfg.ComputeSpec, column string) bool {
	for _, f := range step.Field.Names {
		if f == column {
			return true
		}
	}
	for _, ref := range step.RowArgs {
		if ref == column {
			return true
		}
	}
	for _, tmpl := range step.ViewArgs {
		if templateReferences(tmpl, column) {
			return true
		}
	}
	return false
}

func templateReferences(template, column string) bool {
	for i := 0; i+len(column) <= len(template); i++ {
		if template[i:i+len(column)] == column {
			return true
		}
	}
	return false
}

// RunOnChange is the reactive execution mode: it validates
// (primaryKey, triggerColumn) via GetComputeIndex, then executes
// only the compute-phase steps that the trigger column feeds, in
// declaration order, with the focused row set to primaryKey.
func (s *Scheduler) RunOnChange(primaryKey, triggerColumn string) error {
	hasCompute := len(s.Config.Compute) > 0
	if err := s.DataFrame.SetFocus(primaryKey); err != nil {
		return nil
	}
	if _, ok := s.DataFrame.GetComputeIndex(nil, hasCompute); !ok {
		return nil
	}

	for i, step := range s.Config.Compute {
		if !referencesColumn(step, triggerColumn) {
			continue
		}
		stepCtx := enginerr.StepContext{Index: i, Name: step.Function}
		if err := s.executeStep(step, stepCtx); err != nil {
			return err
		}
	}
	return nil
}
