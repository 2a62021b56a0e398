package resolve

import (
	"github.com/osteele/liquid"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/registry"
)

// Resolver builds the keyword-argument dictionary for a compute step
// against a registry and a shared Liquid engine.
type Resolver struct {
	Registry *registry.Registry
	Liquid   *liquid.Engine
}

// New constructs a Resolver.
func New(reg *registry.Registry, liquidEngine *liquid.Engine) *Resolver {
	return &Resolver{Registry: reg, Liquid: liquidEngine}
}

// Resolve starts from entry.Defaults, merges each argument kind in
// declared order, then filters to entry.Params. Context injection is the
// caller's responsibility — Resolve never injects the engine itself, even
// for function_args callables.
func (r *Resolver) Resolve(df *dataframe.DataFrame, entry registry.Entry, args StepArgs, step enginerr.StepContext) (map[string]any, error) {
	merged := make(map[string]any, len(entry.Defaults))
	for k, v := range entry.Defaults {
		merged[k] = v
	}

	for _, spec := range args.specs() {
		value, err := r.resolveOne(df, spec, step)
		if err != nil {
			return nil, err
		}
		merged[spec.Param] = value
	}

	filtered := make(map[string]any, len(entry.Params))
	for _, p := range entry.Params {
		if v, ok := merged[p]; ok {
			filtered[p] = v
		}
	}
	return filtered, nil
}

func (r *Resolver) resolveOne(df *dataframe.DataFrame, spec ArgSpec, step enginerr.StepContext) (any, error) {
	switch spec.Kind {
	case Literal:
		return spec.Literal, nil

	case RowColumn:
		v, err := df.GetValue(spec.ColumnName)
		if err != nil {
			return nil, &enginerr.ResolutionError{Step: step, Msg: "row_args: unknown column " + spec.ColumnName}
		}
		return v, nil

	case FullColumn:
		v, err := df.GetColumn(spec.ColumnName)
		if err != nil {
			return nil, &enginerr.ResolutionError{Step: step, Msg: "column_args: unknown column " + spec.ColumnName}
		}
		return v, nil

	case Subseries:
		v, err := df.GetSubseries(spec.ColumnName)
		if err != nil {
			return nil, &enginerr.ResolutionError{Step: step, Msg: "subseries_args: unknown series column " + spec.ColumnName}
		}
		return v, nil

	case ViewTemplate:
		ctx := df.RowContext()
		out, err := r.Liquid.ParseAndRenderString(spec.Template, ctx)
		if err != nil {
			return nil, &enginerr.ResolutionError{Step: step, Msg: "view_args: template error: " + err.Error()}
		}
		return out, nil

	case FunctionRef:
		target, err := r.Registry.Lookup(spec.FunctionName)
		if err != nil {
			return nil, &enginerr.ResolutionError{Step: step, Msg: "function_args: unknown function " + spec.FunctionName}
		}
		// No implicit context injection for function_args callables:
		// the returned closure always passes a nil *registry.Context
		// regardless of the target entry's ContextFlag.
		fn := func(value any) (any, error) {
			return target.Impl(nil, map[string]any{"value": value})
		}
		return fn, nil

	default:
		return nil, &enginerr.ResolutionError{Step: step, Msg: "unknown argument kind"}
	}
}
