package ifacecfg

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFieldUnionDecoding(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want []string
	}{
		{"null", "field: null\n", nil},
		{"absent", "function: f\n", nil},
		{"scalar", "field: total\n", []string{"total"}},
		{"sequence", "field: [a, b]\n", []string{"a", "b"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec ComputeSpec
			spec.Function = "f" // satisfy required-key check when yaml omits it
			full := c.yaml
			if c.name != "absent" {
				full = "function: f\n" + c.yaml
			}
			require.NoError(t, yaml.Unmarshal([]byte(full), &spec))
			require.Equal(t, c.want, spec.Field.Names)
		})
	}
}

func TestComputeSpecDefaultsModeAndSeparator(t *testing.T) {
	var spec ComputeSpec
	require.NoError(t, yaml.Unmarshal([]byte("function: f\n"), &spec))
	require.Equal(t, Replace, spec.Mode)
	require.Equal(t, DefaultSeparator, spec.Separator)
}

func TestComputeSpecRequiresFunction(t *testing.T) {
	var spec ComputeSpec
	err := yaml.Unmarshal([]byte("field: x\n"), &spec)
	require.Error(t, err)
}

func TestComputeSpecRejectsInvalidMode(t *testing.T) {
	var spec ComputeSpec
	err := yaml.Unmarshal([]byte("function: f\nmode: bogus\n"), &spec)
	require.Error(t, err)
}

func TestComputeSpecRejectsUnknownKey(t *testing.T) {
	var spec ComputeSpec
	err := yaml.Unmarshal([]byte("function: f\nbogus_key: 1\n"), &spec)
	require.Error(t, err)
}

func TestComputeConfigFlatShape(t *testing.T) {
	var cfg ComputeConfig
	doc := "- function: a\n- function: b\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))
	require.Len(t, cfg.Compute, 2)
	require.Empty(t, cfg.Precompute)
	require.Empty(t, cfg.Postcompute)
}

func TestComputeConfigPhasedShape(t *testing.T) {
	var cfg ComputeConfig
	doc := "precompute:\n  - function: a\ncompute:\n  - function: b\npostcompute:\n  - function: c\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))
	require.Len(t, cfg.Precompute, 1)
	require.Len(t, cfg.Compute, 1)
	require.Len(t, cfg.Postcompute, 1)
	require.Equal(t, []string{"a", "b", "c"}, []string{cfg.Precompute[0].Function, cfg.Compute[0].Function, cfg.Postcompute[0].Function})
	require.Len(t, cfg.All(), 3, "All() concatenates every phase in run order")
}

func TestComputeConfigPhasedShapeRejectsUnknownKey(t *testing.T) {
	var cfg ComputeConfig
	doc := "compute:\n  - function: a\nbogus:\n  - function: b\n"
	err := yaml.Unmarshal([]byte(doc), &cfg)
	require.Error(t, err)
}

func TestInterfaceRejectsUnknownTopLevelKey(t *testing.T) {
	doc := "input:\n  type: fake\nbogus_section: 1\n"
	_, err := Parse([]byte(doc))
	require.Error(t, err)
}

func TestInterfaceParsesKnownSections(t *testing.T) {
	doc := "input:\n  type: fake\n  rows: 3\noutput:\n  type: local\n  filename: out.csv\ncolumns: [a, b]\n"
	iface, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, "fake", iface.Input.Type)
	require.Equal(t, 3, iface.Input.Rows)
	require.Equal(t, "local", iface.Output.Type)
	require.Equal(t, []string{"a", "b"}, iface.Columns)
}

func TestInputRejectsUnknownKey(t *testing.T) {
	var in Input
	err := yaml.Unmarshal([]byte("type: fake\nbogus: 1\n"), &in)
	require.Error(t, err)
}

func TestOutputRejectsUnknownKey(t *testing.T) {
	var out Output
	err := yaml.Unmarshal([]byte("type: local\nbogus: 1\n"), &out)
	require.Error(t, err)
}
