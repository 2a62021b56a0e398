package ifacecfg

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/resolve"
)

// Mode is a compute step's write-back accumulation mode.
type Mode string

const (
	Replace Mode = "replace"
	Append  Mode = "append"
	Prepend Mode = "prepend"
)

// DefaultSeparator is inserted between existing and new values for
// append/prepend when a step does not declare its own.
const DefaultSeparator = "\n\n---\n\n"

// Field is a compute step's output target: nil for a side-effecting step,
// one name for single-output, or several for multi-output.
// It decodes from YAML null, a scalar string, or a sequence of strings.
type Field struct {
	Names []string
}

func (f Field) IsSideEffect() bool { return len(f.Names) == 0 }
func (f Field) IsMulti() bool      { return len(f.Names) > 1 }

func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			f.Names = nil
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		f.Names = []string{s}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		f.Names = names
		return nil
	case 0:
		f.Names = nil
		return nil
	default:
		return fmt.Errorf("field: unsupported YAML node kind %v", node.Kind)
	}
}

var computeSpecKeys = map[string]bool{
	"function": true, "field": true, "args": true, "row_args": true,
	"column_args": true, "subseries_args": true, "view_args": true,
	"function_args": true, "refresh": true, "mode": true, "separator": true,
}

// ComputeSpec is a single compute step record.
type ComputeSpec struct {
	Function string `yaml:"function"`
	Field    Field  `yaml:"field,omitempty"`
	resolve.StepArgs `yaml:",inline"`
	Refresh   bool   `yaml:"refresh,omitempty"`
	Mode      Mode   `yaml:"mode,omitempty"`
	Separator string `yaml:"separator,omitempty"`
}

func (s *ComputeSpec) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKnownKeys(node, computeSpecKeys, "compute step"); err != nil {
		return err
	}
	type plain ComputeSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = ComputeSpec(p)
	if s.Function == "" {
		return &enginerr.ConfigError{Msg: "compute step missing required key: function"}
	}
	if s.Mode == "" {
		s.Mode = Replace
	}
	if s.Mode != Replace && s.Mode != Append && s.Mode != Prepend {
		return &enginerr.ConfigError{Msg: fmt.Sprintf("compute step %q: invalid mode %q", s.Function, s.Mode)}
	}
	if s.Separator == "" {
		s.Separator = DefaultSeparator
	}
	return nil
}
