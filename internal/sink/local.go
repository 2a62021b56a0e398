package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// Local writes a CSV file (via encoding/csv) or a YAML list of records
// (via yaml.v3) through an afero.Fs, mirroring internal/source.Local.
type Local struct {
	FS afero.Fs
}

func (l *Local) format(out ifacecfg.Output) string {
	switch out.Type {
	case "csv":
		return "csv"
	case "yaml":
		return "yaml"
	}
	lower := strings.ToLower(out.Filename)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return "yaml"
	}
	return "csv"
}

func (l *Local) Write(_ context.Context, df *dataframe.DataFrame, out ifacecfg.Output) error {
	if out.Filename == "" {
		return &enginerr.ConfigError{Msg: "local output: filename is required"}
	}

	indexName := out.Index
	if indexName == "" {
		indexName = df.IndexName()
	}

	columns := out.Columns
	if len(columns) == 0 {
		byKind := df.Columns()
		for _, names := range byKind {
			columns = append(columns, names...)
		}
	}

	colData := make(map[string]map[string]any, len(columns))
	for _, name := range columns {
		col, err := df.GetColumn(name)
		if err != nil {
			return err
		}
		if m, ok := col.(map[string]any); ok {
			colData[name] = m
		}
	}

	primary := df.PrimaryIndex()
	records := make([]map[string]any, 0, len(primary))
	for _, key := range primary {
		rec := map[string]any{indexName: key}
		for _, name := range columns {
			if m, ok := colData[name]; ok {
				rec[name] = m[key]
			}
		}
		records = append(records, rec)
	}

	var raw []byte
	var err error
	if l.format(out) == "yaml" {
		raw, err = yaml.Marshal(records)
	} else {
		raw, err = encodeCSV(append([]string{indexName}, columns...), primary, records)
	}
	if err != nil {
		return &enginerr.ExternalError{Err: fmt.Errorf("local output %s: %w", out.Filename, err)}
	}

	if err := afero.WriteFile(l.FS, out.Filename, raw, 0o644); err != nil {
		return &enginerr.ExternalError{Err: fmt.Errorf("local output %s: %w", out.Filename, err)}
	}
	return nil
}

func encodeCSV(header []string, primary []string, records []map[string]any) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = fmt.Sprintf("%v", rec[h])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
