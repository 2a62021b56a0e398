// Package sink implements the output-collaborator boundary: a typed
// Writer interface plus a Local implementation mirroring internal/source's
// Local reader.
package sink

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// Writer persists a DataFrame per an output descriptor.
type Writer interface {
	Write(ctx context.Context, df *dataframe.DataFrame, out ifacecfg.Output) error
}

// Dispatch selects the Writer for an output descriptor's declared type.
func Dispatch(fs afero.Fs, out ifacecfg.Output) (Writer, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	switch out.Type {
	case "local", "csv", "yaml", "":
		return &Local{FS: fs}, nil
	default:
		return nil, &enginerr.ConfigError{Msg: fmt.Sprintf("output: unknown type %q", out.Type)}
	}
}

// Write dispatches out to its Writer and runs it.
func Write(ctx context.Context, fs afero.Fs, df *dataframe.DataFrame, out ifacecfg.Output) error {
	w, err := Dispatch(fs, out)
	if err != nil {
		return err
	}
	return w.Write(ctx, df, out)
}
