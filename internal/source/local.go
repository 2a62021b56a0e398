package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginerr"
	"github.com/flowtable/compute/internal/ifacecfg"
)

// Local reads a CSV file (via encoding/csv) or a YAML list of records (via
// yaml.v3) through an afero.Fs, honoring an input descriptor's index,
// select, and mapping fields (the `local` input type).
type Local struct {
	FS afero.Fs
}

func (l *Local) format(in ifacecfg.Input) string {
	switch in.Type {
	case "csv":
		return "csv"
	case "yaml":
		return "yaml"
	}
	lower := strings.ToLower(in.Filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return "csv"
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return "yaml"
	default:
		return "csv"
	}
}

func (l *Local) Read(_ context.Context, in ifacecfg.Input) (*dataframe.DataFrame, error) {
	if in.Filename == "" {
		return nil, &enginerr.ConfigError{Msg: "local input: filename is required"}
	}
	raw, err := afero.ReadFile(l.FS, in.Filename)
	if err != nil {
		return nil, &enginerr.ExternalError{Err: fmt.Errorf("local input %s: %w", in.Filename, err)}
	}

	var rows []map[string]any
	var columns []string
	switch l.format(in) {
	case "csv":
		rows, columns, err = parseCSV(raw)
	default:
		rows, columns, err = parseYAMLRecords(raw)
	}
	if err != nil {
		return nil, &enginerr.ExternalError{Err: fmt.Errorf("local input %s: %w", in.Filename, err)}
	}

	return buildDataFrame(rows, columns, in)
}

// parseCSV decodes a CSV document's header row as column order and its
// remaining rows as string-valued records.
func parseCSV(raw []byte) ([]map[string]any, []string, error) {
	r := csv.NewReader(strings.NewReader(string(raw)))
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	header := records[0]
	rows := make([]map[string]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]any, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// parseYAMLRecords decodes a YAML document that is a plain list of
// mappings, collecting the union of keys (in first-seen order) as the
// column set.
func parseYAMLRecords(raw []byte) ([]map[string]any, []string, error) {
	var records []map[string]any
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, nil, err
	}
	seen := make(map[string]bool)
	var columns []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	return records, columns, nil
}

// buildDataFrame assembles a DataFrame from parsed rows under the kind
// every raw source contributes (KindInput), applying index, select, and
// per-source mapping.
func buildDataFrame(rows []map[string]any, columns []string, in ifacecfg.Input) (*dataframe.DataFrame, error) {
	indexName := in.Index
	if indexName == "" {
		indexName = "_row"
	}

	primaryKeys := make([]string, len(rows))
	for i, row := range rows {
		if in.Index != "" {
			primaryKeys[i] = fmt.Sprintf("%v", row[in.Index])
		} else {
			primaryKeys[i] = strconv.Itoa(i)
		}
	}

	df := dataframe.New(indexName, primaryKeys)

	dataColumns := selected(columns, in.Select)
	for _, col := range dataColumns {
		if col == in.Index {
			continue
		}
		data := make(map[string]any, len(rows))
		for i, row := range rows {
			data[primaryKeys[i]] = row[col]
		}
		if err := df.AddColumn(col, dataframe.KindInput, data); err != nil {
			return nil, err
		}
	}

	if err := applyMapping(df, in.Mapping); err != nil {
		return nil, err
	}
	return df, nil
}
