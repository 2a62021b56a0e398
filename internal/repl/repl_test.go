package repl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/osteele/liquid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/flowtable/compute/internal/registry"
	"github.com/flowtable/compute/internal/resolve"
)

func newTestREPL(t *testing.T) *REPL {
	t.Helper()
	reg := registry.New(registry.BaseGroup(liquid.NewEngine()))
	resolver := resolve.New(reg, liquid.NewEngine())
	return &REPL{Registry: reg, Resolver: resolver, FS: afero.NewMemMapFs()}
}

// writeFakeInterface writes a real file, since ifacecfg.Load always reads
// via os.ReadFile rather than through an afero.Fs.
func writeFakeInterface(t *testing.T) string {
	t.Helper()
	yaml := `
input:
  type: fake
  rows: 3
  select: [value]
`
	path := filepath.Join(t.TempDir(), "iface.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestDispatchUnknownVerb(t *testing.T) {
	r := newTestREPL(t)
	err := r.dispatch(context.Background(), "frobnicate")
	require.Error(t, err)
}

func TestDispatchQuit(t *testing.T) {
	r := newTestREPL(t)
	for _, verb := range []string{"quit", "exit"} {
		err := r.dispatch(context.Background(), verb)
		require.ErrorIs(t, err, errQuit)
	}
}

func TestDispatchHelpDoesNotError(t *testing.T) {
	r := newTestREPL(t)
	require.NoError(t, r.dispatch(context.Background(), "help"))
}

func TestCommandsRequireLoadedDataFrame(t *testing.T) {
	r := newTestREPL(t)
	require.Error(t, r.cmdRun())
	require.Error(t, r.cmdShow())
	require.Error(t, r.cmdGet([]string{"0", "value"}))
	require.Error(t, r.cmdSet([]string{"0", "value", "x"}))
}

func TestLoadRunGetSetRoundTrip(t *testing.T) {
	r := newTestREPL(t)
	path := writeFakeInterface(t)

	require.NoError(t, r.cmdLoad(context.Background(), []string{path}))
	require.NotNil(t, r.DataFrame)
	require.NotNil(t, r.Scheduler)

	require.NoError(t, r.cmdRun())
	require.NoError(t, r.cmdGet([]string{"0", "value"}))
	require.NoError(t, r.cmdSet([]string{"0", "note", "override"}))

	v, err := r.DataFrame.GetValue("note")
	require.NoError(t, err)
	require.Equal(t, "override", v)
}

func TestCmdGetRejectsWrongArgCount(t *testing.T) {
	r := newTestREPL(t)
	path := writeFakeInterface(t)
	require.NoError(t, r.cmdLoad(context.Background(), []string{path}))

	require.Error(t, r.cmdGet([]string{"0"}))
	require.Error(t, r.cmdSet([]string{"0", "value"}))
}
