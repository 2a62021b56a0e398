// Package source implements the input-collaborator boundary: a typed
// Reader interface plus light, dependency-appropriate implementations so
// the engine is runnable end-to-end without a host application supplying
// its own collaborators.
package source

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// Reader produces a DataFrame from an input descriptor (a
// `read(interface) -> DataFrame` contract, narrowed to a single source).
type Reader interface {
	Read(ctx context.Context, in ifacecfg.Input) (*dataframe.DataFrame, error)
}

// Dispatch selects the Reader for an input descriptor's declared type.
// fs is the filesystem local/csv/yaml readers operate against; a nil fs
// defaults to the OS filesystem.
func Dispatch(fs afero.Fs, in ifacecfg.Input) (Reader, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	switch in.Type {
	case "local", "csv", "yaml":
		return &Local{FS: fs}, nil
	case "fake":
		return &Fake{}, nil
	case "vstack", "list":
		return &VStack{FS: fs}, nil
	case "markdown_directory", "excel", "google_sheets", "pdf":
		return &Unsupported{Type: in.Type}, nil
	default:
		return nil, &enginerr.ConfigError{Msg: fmt.Sprintf("input: unknown type %q", in.Type)}
	}
}

// Read dispatches in to its Reader and runs it, a convenience for callers
// that do not need to hold onto the Reader itself.
func Read(ctx context.Context, fs afero.Fs, in ifacecfg.Input) (*dataframe.DataFrame, error) {
	r, err := Dispatch(fs, in)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, in)
}

// applyMapping installs a source's own canonical-name mapping (spec
// §3.4 step 2): in.Mapping is canonical name -> storage column, the same
// convention as DataFrame.UpdateNameColumnMap's (name, column) order.
func applyMapping(df *dataframe.DataFrame, mapping map[string]string) error {
	for canonical, column := range mapping {
		if err := df.UpdateNameColumnMap(canonical, column); err != nil {
			return fmt.Errorf("source: applying mapping %s->%s: %w", canonical, column, err)
		}
	}
	return nil
}

func selected(columns []string, allowed []string) []string {
	if len(allowed) == 0 {
		return columns
	}
	want := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		want[c] = true
	}
	var out []string
	for _, c := range columns {
		if want[c] {
			out = append(out, c)
		}
	}
	return out
}
