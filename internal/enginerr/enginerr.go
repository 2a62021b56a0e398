// Package enginerr defines the error kinds the compute engine distinguishes:
// configuration, resolution, mapping-conflict, mutation, shape, and
// external errors. ConfigError, ResolutionError, ShapeError and
// ExternalError carry a StepContext (step index, step name, field name);
// MappingConflictError and MutationError carry the names involved instead.
package enginerr

import "fmt"

// StepContext identifies the compute step an error occurred in.
type StepContext struct {
	Index int
	Name  string
	Field string
}

func (c StepContext) String() string {
	if c.Field != "" {
		return fmt.Sprintf("step %d (%s), field %q", c.Index, c.Name, c.Field)
	}
	return fmt.Sprintf("step %d (%s)", c.Index, c.Name)
}

// ConfigError reports a malformed compute specification: a missing
// required key, an unknown top-level key, or an invalid mode value.
type ConfigError struct {
	Step StepContext
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error at %s: %s", e.Step, e.Msg)
}

// ResolutionError reports an unknown function or canonical name referenced
// by a compute step's argument maps.
type ResolutionError struct {
	Step StepContext
	Msg  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution error at %s: %s", e.Step, e.Msg)
}

// MappingConflictError reports a name-map collision against a
// non-default (user-declared) existing entry.
type MappingConflictError struct {
	Name, Column, ExistingName string
}

func (e *MappingConflictError) Error() string {
	return fmt.Sprintf("mapping conflict: cannot map %q to column %q, already mapped from %q",
		e.Name, e.Column, e.ExistingName)
}

// MutationError reports a rejected write: to an immutable column, an add
// of an existing column, or a drop of an absent column.
type MutationError struct {
	Name string
	Msg  string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mutation error on %q: %s", e.Name, e.Msg)
}

// ShapeError reports a multi-output function whose return arity does not
// match its declared field list.
type ShapeError struct {
	Step     StepContext
	Expected int
	Got      int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape error at %s: expected %d output(s), got %d", e.Step, e.Expected, e.Got)
}

// ExternalError wraps a failure propagated from a collaborator (file,
// network, malformed external input), annotated with step context where
// one is available.
type ExternalError struct {
	Step StepContext
	Err  error
}

func (e *ExternalError) Error() string {
	if e.Step.Name == "" {
		return fmt.Sprintf("external error: %v", e.Err)
	}
	return fmt.Sprintf("external error at %s: %v", e.Step, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}
