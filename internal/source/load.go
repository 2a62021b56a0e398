package source

import (
	"context"

	"github.com/spf13/afero"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// Load runs the full DataFrame construction lifecycle: collect the
// interface's input source, apply the interface-level name map at
// finalisation, augment default naming for any columns that map was
// silent on, then batch-add any interface-declared columns still absent.
func Load(ctx context.Context, fs afero.Fs, iface *ifacecfg.Interface) (*dataframe.DataFrame, error) {
	df, err := Read(ctx, fs, iface.Input)
	if err != nil {
		return nil, err
	}

	if err := applyMapping(df, iface.Mapping); err != nil {
		return nil, err
	}

	df.ApplyDefaultNaming()

	var missing []string
	for _, name := range iface.Columns {
		if !df.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		if err := df.AddColumns(missing, dataframe.KindCache); err != nil {
			return nil, err
		}
	}

	return df, nil
}
