package ifacecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var inputKeys = map[string]bool{
	"type": true, "filename": true, "url": true, "index": true,
	"select": true, "data": true, "mapping": true, "sources": true, "rows": true,
}

// Input is an input source descriptor. Type selects the
// collaborator: "local", "yaml", "markdown_directory", "excel", "csv",
// "list", "vstack", or "fake". Not every field applies to every type;
// internal/source interprets them per-type.
type Input struct {
	Type     string            `yaml:"type"`
	Filename string            `yaml:"filename,omitempty"`
	URL      string            `yaml:"url,omitempty"`
	Index    string            `yaml:"index,omitempty"`
	Select   []string          `yaml:"select,omitempty"`
	Data     []map[string]any  `yaml:"data,omitempty"`
	Mapping  map[string]string `yaml:"mapping,omitempty"`
	Sources  []Input           `yaml:"sources,omitempty"`
	Rows     int               `yaml:"rows,omitempty"`
}

func (in *Input) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKnownKeys(node, inputKeys, "input"); err != nil {
		return err
	}
	type plain Input
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*in = Input(p)
	return nil
}

var outputKeys = map[string]bool{
	"type": true, "filename": true, "columns": true, "index": true,
}

// Output is an output storage descriptor.
type Output struct {
	Type     string   `yaml:"type"`
	Filename string   `yaml:"filename,omitempty"`
	Columns  []string `yaml:"columns,omitempty"`
	Index    string   `yaml:"index,omitempty"`
}

func (out *Output) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKnownKeys(node, outputKeys, "output"); err != nil {
		return err
	}
	type plain Output
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*out = Output(p)
	return nil
}

var interfaceKeys = map[string]bool{
	"input": true, "output": true, "compute": true, "mapping": true,
	"columns": true, "review": true, "editpdf": true, "viewer": true,
	"documents": true,
}

// Interface is the top-level descriptor driving the engine.
// review, editpdf, viewer, and documents are application-level
// extensions the core never interprets; they decode opaquely and are
// handed back to callers verbatim.
type Interface struct {
	Input   Input             `yaml:"input"`
	Output  Output            `yaml:"output,omitempty"`
	Compute ComputeConfig     `yaml:"compute,omitempty"`
	Mapping map[string]string `yaml:"mapping,omitempty"`
	Columns []string          `yaml:"columns,omitempty"`

	Review    map[string]any `yaml:"review,omitempty"`
	EditPDF   map[string]any `yaml:"editpdf,omitempty"`
	Viewer    map[string]any `yaml:"viewer,omitempty"`
	Documents map[string]any `yaml:"documents,omitempty"`
}

func (i *Interface) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKnownKeys(node, interfaceKeys, "interface"); err != nil {
		return err
	}
	type plain Interface
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*i = Interface(p)
	return nil
}

// Parse decodes a single Interface document from raw YAML bytes.
func Parse(data []byte) (*Interface, error) {
	var iface Interface
	if err := yaml.Unmarshal(data, &iface); err != nil {
		return nil, fmt.Errorf("ifacecfg: parse interface: %w", err)
	}
	return &iface, nil
}

// Load reads and parses an Interface descriptor from a file path.
func Load(path string) (*Interface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ifacecfg: read %s: %w", path, err)
	}
	return Parse(data)
}
