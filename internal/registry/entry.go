// Package registry implements the function registry: an ordered list of
// named entries, each an (implementation, default arguments, documentation,
// context-flag) tuple, assembled by composing a base group with extension
// groups where the later entry wins on a name collision.
package registry

import "github.com/flowtable/compute/internal/dataframe"

// Context is passed to a context-flagged entry's implementation as the
// engine handle, letting it call back into the data model. Entries
// without ContextFlag still receive a Context value but are not expected
// to use it; the resolver never injects one implicitly for callables
// reached via function_args.
type Context struct {
	DataFrame *dataframe.DataFrame
	Registry  *Registry
}

// Impl is a registered function's native implementation. args holds only
// the keys Params declares; unknown keys are filtered out before Impl is
// called.
type Impl func(ctx *Context, args map[string]any) (any, error)

// Entry is a single registered function.
type Entry struct {
	Name     string
	Impl     Impl
	// Params lists the legal argument keys Impl accepts — named parameters
	// define the set of legal argument keys — made explicit since Go does
	// not expose named-parameter reflection over func values.
	Params       []string
	Defaults     map[string]any
	Doc          string
	ContextFlag  bool
}

// hasParam reports whether name is among Params.
func (e Entry) hasParam(name string) bool {
	for _, p := range e.Params {
		if p == name {
			return true
		}
	}
	return false
}
