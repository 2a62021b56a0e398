package source

import (
	"context"
	"fmt"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// Fake is a deterministic synthetic-data generator (the `fake` input
// type): given a row count and a column list, it produces reproducible
// placeholder values, useful for tests and scenario fixtures without
// depending on an external data file.
type Fake struct{}

func (f *Fake) Read(_ context.Context, in ifacecfg.Input) (*dataframe.DataFrame, error) {
	rows := in.Rows
	if rows <= 0 {
		rows = 10
	}
	indexName := in.Index
	if indexName == "" {
		indexName = "_row"
	}
	columns := in.Select
	if len(columns) == 0 {
		columns = []string{"value"}
	}

	primaryKeys := make([]string, rows)
	for i := range primaryKeys {
		primaryKeys[i] = fmt.Sprintf("%d", i)
	}
	df := dataframe.New(indexName, primaryKeys)

	for _, col := range columns {
		data := make(map[string]any, rows)
		for i, key := range primaryKeys {
			data[key] = fmt.Sprintf("%s-%d", col, i)
		}
		if err := df.AddColumn(col, dataframe.KindInput, data); err != nil {
			return nil, err
		}
	}

	return df, applyMapping(df, in.Mapping)
}
