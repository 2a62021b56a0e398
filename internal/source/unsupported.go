package source

import (
	"context"
	"fmt"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// Unsupported is the boundary type for input types out of scope for the
// core reader set (markdown_directory, excel, google_sheets, pdf): it
// fails clearly rather than pretending to read anything.
type Unsupported struct {
	Type string
}

func (u *Unsupported) Read(_ context.Context, in ifacecfg.Input) (*dataframe.DataFrame, error) {
	return nil, &enginerr.ExternalError{Err: fmt.Errorf("input type %q is not implemented by the core; provide a host collaborator", u.Type)}
}
