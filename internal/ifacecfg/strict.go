// Package ifacecfg decodes the YAML-authored Interface descriptor and
// compute step schema that drive the engine.
package ifacecfg

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flowtable/compute/internal/enginerr"
)

// checkKnownKeys rejects any mapping key in node not present in allowed.
// yaml.v3's Decoder has no KnownFields option (unlike yaml.v2's
// Strict), so the check is written out by hand against the raw node:
// unknown top-level keys are rejected rather than silently ignored.
func checkKnownKeys(node *yaml.Node, allowed map[string]bool, context string) error {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	var unknown []string
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !allowed[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &enginerr.ConfigError{Msg: fmt.Sprintf("%s: unknown key(s): %s", context, strings.Join(unknown, ", "))}
	}
	return nil
}
