// Package resolve implements the argument resolver: given a compute
// step's five argument maps and the focused cursor, it builds the
// keyword-argument dictionary passed to a registry function.
package resolve

// StepArgs is the wire shape of a compute step's argument bindings: five
// maps plus the direct-literal form, decoded straight from YAML by
// internal/ifacecfg.
type StepArgs struct {
	Args          map[string]any    `yaml:"args,omitempty"`
	RowArgs       map[string]string `yaml:"row_args,omitempty"`
	ColumnArgs    map[string]string `yaml:"column_args,omitempty"`
	SubseriesArgs map[string]string `yaml:"subseries_args,omitempty"`
	ViewArgs      map[string]string `yaml:"view_args,omitempty"`
	FunctionArgs  map[string]string `yaml:"function_args,omitempty"`
}

// Kind tags one variant of the argument-kind sum type: Literal, RowColumn,
// FullColumn, Subseries, ViewTemplate, FunctionRef. Go has no tagged-union
// language feature, so ArgSpec represents it as a struct carrying this tag
// plus the payload for whichever variant it is.
type Kind int

const (
	Literal Kind = iota
	RowColumn
	FullColumn
	Subseries
	ViewTemplate
	FunctionRef
)

// ArgSpec is one resolved binding: a parameter name plus the tagged
// variant describing where its value comes from.
type ArgSpec struct {
	Param        string
	Kind         Kind
	Literal      any
	ColumnName   string
	Template     string
	FunctionName string
}

// specs returns the step's bindings as ArgSpec values, in documented merge
// order (args, row_args, column_args, subseries_args, view_args,
// function_args) — later groups overwrite earlier ones on a
// parameter-name collision, since callers apply them in this order.
func (s StepArgs) specs() []ArgSpec {
	out := make([]ArgSpec, 0, len(s.Args)+len(s.RowArgs)+len(s.ColumnArgs)+len(s.SubseriesArgs)+len(s.ViewArgs)+len(s.FunctionArgs))
	for param, v := range s.Args {
		out = append(out, ArgSpec{Param: param, Kind: Literal, Literal: v})
	}
	for param, col := range s.RowArgs {
		out = append(out, ArgSpec{Param: param, Kind: RowColumn, ColumnName: col})
	}
	for param, col := range s.ColumnArgs {
		out = append(out, ArgSpec{Param: param, Kind: FullColumn, ColumnName: col})
	}
	for param, col := range s.SubseriesArgs {
		out = append(out, ArgSpec{Param: param, Kind: Subseries, ColumnName: col})
	}
	for param, tmpl := range s.ViewArgs {
		out = append(out, ArgSpec{Param: param, Kind: ViewTemplate, Template: tmpl})
	}
	for param, fn := range s.FunctionArgs {
		out = append(out, ArgSpec{Param: param, Kind: FunctionRef, FunctionName: fn})
	}
	return out
}
