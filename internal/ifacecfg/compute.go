package ifacecfg

import (
	"gopkg.in/yaml.v3"

	"github.com/flowtable/compute/internal/enginerr"
)

var computeConfigKeys = map[string]bool{
	"precompute": true, "compute": true, "postcompute": true,
}

// ComputeConfig holds a compute section's steps, partitioned by phase
// (precompute/compute/postcompute scheduler phases). It decodes from
// either YAML shape: a flat sequence of steps (all assigned to the
// compute phase) or a mapping with explicit precompute/compute/postcompute
// sub-lists.
type ComputeConfig struct {
	Precompute  []ComputeSpec
	Compute     []ComputeSpec
	Postcompute []ComputeSpec
}

// All returns the three phases concatenated in scheduler run order.
func (c ComputeConfig) All() []ComputeSpec {
	out := make([]ComputeSpec, 0, len(c.Precompute)+len(c.Compute)+len(c.Postcompute))
	out = append(out, c.Precompute...)
	out = append(out, c.Compute...)
	out = append(out, c.Postcompute...)
	return out
}

func (c *ComputeConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var steps []ComputeSpec
		if err := node.Decode(&steps); err != nil {
			return err
		}
		c.Compute = steps
		return nil

	case yaml.MappingNode:
		if err := checkKnownKeys(node, computeConfigKeys, "compute"); err != nil {
			return err
		}
		type plain struct {
			Precompute  []ComputeSpec `yaml:"precompute,omitempty"`
			Compute     []ComputeSpec `yaml:"compute,omitempty"`
			Postcompute []ComputeSpec `yaml:"postcompute,omitempty"`
		}
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		c.Precompute, c.Compute, c.Postcompute = p.Precompute, p.Compute, p.Postcompute
		return nil

	case 0:
		return nil

	default:
		return &enginerr.ConfigError{Msg: "compute: expected a list of steps or a precompute/compute/postcompute mapping"}
	}
}
