package source

import (
	"context"

	"github.com/spf13/afero"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// VStack vertically concatenates the DataFrames of its child sources,
// each having already applied its own per-source mapping. It also backs
// the `list` input type (a list of files of mixed types), treated as
// vstack over heterogeneous per-file sources.
type VStack struct {
	FS afero.Fs
}

func (v *VStack) Read(ctx context.Context, in ifacecfg.Input) (*dataframe.DataFrame, error) {
	if len(in.Sources) == 0 {
		return nil, &enginerr.ConfigError{Msg: "vstack input: sources is required"}
	}

	children := make([]*dataframe.DataFrame, 0, len(in.Sources))
	for _, childIn := range in.Sources {
		child, err := Read(ctx, v.FS, childIn)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	indexName := in.Index
	if indexName == "" {
		indexName = children[0].IndexName()
	}

	var primaryKeys []string
	for _, child := range children {
		primaryKeys = append(primaryKeys, child.PrimaryIndex()...)
	}
	stacked := dataframe.New(indexName, primaryKeys)

	columnData := make(map[string]map[string]any)
	var columnOrder []string
	for _, child := range children {
		for kind, names := range child.Columns() {
			if kind != string(dataframe.KindInput) {
				continue
			}
			for _, name := range names {
				col, err := child.GetColumn(name)
				if err != nil {
					return nil, err
				}
				values, ok := col.(map[string]any)
				if !ok {
					continue
				}
				dst, exists := columnData[name]
				if !exists {
					dst = make(map[string]any)
					columnData[name] = dst
					columnOrder = append(columnOrder, name)
				}
				for k, v := range values {
					dst[k] = v
				}
			}
		}
	}

	for _, name := range columnOrder {
		if err := stacked.AddColumn(name, dataframe.KindInput, columnData[name]); err != nil {
			return nil, err
		}
	}

	return stacked, applyMapping(stacked, in.Mapping)
}
