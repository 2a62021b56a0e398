package sink

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/ifacecfg"
)

func buildTestDataFrame(t *testing.T) *dataframe.DataFrame {
	t.Helper()
	df := dataframe.New("id", []string{"1", "2"})
	require.NoError(t, df.AddColumn("name", dataframe.KindOutput, map[string]any{"1": "Ada", "2": "Grace"}))
	return df
}

func TestLocalWriteCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	df := buildTestDataFrame(t)

	l := &Local{FS: fs}
	require.NoError(t, l.Write(context.Background(), df, ifacecfg.Output{Filename: "out.csv"}))

	raw, err := afero.ReadFile(fs, "out.csv")
	require.NoError(t, err)
	require.Contains(t, string(raw), "id,name")
	require.Contains(t, string(raw), "1,Ada")
	require.Contains(t, string(raw), "2,Grace")
}

func TestLocalWriteYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	df := buildTestDataFrame(t)

	l := &Local{FS: fs}
	require.NoError(t, l.Write(context.Background(), df, ifacecfg.Output{Filename: "out.yaml"}))

	raw, err := afero.ReadFile(fs, "out.yaml")
	require.NoError(t, err)
	require.Contains(t, string(raw), "name: Ada")
	require.Contains(t, string(raw), "name: Grace")
}

func TestLocalWriteMissingFilename(t *testing.T) {
	l := &Local{FS: afero.NewMemMapFs()}
	err := l.Write(context.Background(), buildTestDataFrame(t), ifacecfg.Output{})
	require.Error(t, err)
}

func TestLocalWriteRestrictsToDeclaredColumns(t *testing.T) {
	fs := afero.NewMemMapFs()
	df := buildTestDataFrame(t)
	require.NoError(t, df.AddColumn("secret", dataframe.KindCache, map[string]any{"1": "x", "2": "y"}))

	l := &Local{FS: fs}
	require.NoError(t, l.Write(context.Background(), df, ifacecfg.Output{Filename: "out.csv", Columns: []string{"name"}}))

	raw, err := afero.ReadFile(fs, "out.csv")
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret")
}

func TestDispatchUnknownType(t *testing.T) {
	_, err := Dispatch(afero.NewMemMapFs(), ifacecfg.Output{Type: "nope"})
	require.Error(t, err)
}
