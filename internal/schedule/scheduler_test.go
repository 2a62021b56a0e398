package schedule

import (
	"testing"

	"github.com/osteele/liquid"
	"github.com/stretchr/testify/require"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/ifacecfg"
	"github.com/flowtable/compute/internal/registry"
	"github.com/flowtable/compute/internal/resolve"
)

func newTestScheduler(t *testing.T, reg *registry.Registry, cfg ifacecfg.ComputeConfig) (*Scheduler, *dataframe.DataFrame) {
	t.Helper()
	df := dataframe.New("id", []string{"r1", "r2"})
	require.NoError(t, df.AddColumn("x", dataframe.KindInput, map[string]any{"r1": 2.0, "r2": 3.0}))
	resolver := resolve.New(reg, liquid.NewEngine())
	return New(df, reg, resolver, cfg, nil), df
}

func doubleEntry(calls *int) registry.Entry {
	return registry.Entry{
		Name:   "double",
		Params: []string{"value"},
		Impl: func(_ *registry.Context, args map[string]any) (any, error) {
			*calls++
			f, _ := args["value"].(float64)
			return f * 2, nil
		},
	}
}

func TestRunAllSkipsWhenPresentAndNoRefresh(t *testing.T) {
	var calls int
	reg := registry.New([]registry.Entry{doubleEntry(&calls)})
	cfg := ifacecfg.ComputeConfig{
		Compute: []ifacecfg.ComputeSpec{
			{
				Function: "double",
				Field:    ifacecfg.Field{Names: []string{"y"}},
				Mode:     ifacecfg.Replace,
				StepArgs: resolve.StepArgs{RowArgs: map[string]string{"value": "x"}},
			},
		},
	}
	sched, df := newTestScheduler(t, reg, cfg)

	require.NoError(t, sched.RunAll())
	require.Equal(t, 2, calls, "first run must compute for every row since y is missing")

	require.NoError(t, df.SetFocus("r1"))
	v, err := df.GetValue("y")
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	require.NoError(t, sched.RunAll())
	require.Equal(t, 2, calls, "second run must skip: y present and refresh=false")
}

func TestRunAllRefreshAlwaysRuns(t *testing.T) {
	var calls int
	reg := registry.New([]registry.Entry{doubleEntry(&calls)})
	cfg := ifacecfg.ComputeConfig{
		Compute: []ifacecfg.ComputeSpec{
			{
				Function: "double",
				Field:    ifacecfg.Field{Names: []string{"y"}},
				Mode:     ifacecfg.Replace,
				Refresh:  true,
				StepArgs: resolve.StepArgs{RowArgs: map[string]string{"value": "x"}},
			},
		},
	}
	sched, _ := newTestScheduler(t, reg, cfg)

	require.NoError(t, sched.RunAll())
	require.NoError(t, sched.RunAll())
	require.Equal(t, 4, calls, "refresh=true must run every pass regardless of presence")
}

func TestRunAllAppendAccumulates(t *testing.T) {
	calls := 0
	reg := registry.New([]registry.Entry{
		{
			Name:   "tag",
			Params: []string{"value"},
			Impl: func(_ *registry.Context, args map[string]any) (any, error) {
				calls++
				return "note", nil
			},
		},
	})
	cfg := ifacecfg.ComputeConfig{
		Compute: []ifacecfg.ComputeSpec{
			{
				Function:  "tag",
				Field:     ifacecfg.Field{Names: []string{"notes"}},
				Mode:      ifacecfg.Append,
				Separator: "|",
				StepArgs:  resolve.StepArgs{RowArgs: map[string]string{"value": "x"}},
			},
		},
	}
	sched, df := newTestScheduler(t, reg, cfg)

	require.NoError(t, sched.RunAll())
	require.NoError(t, sched.RunAll())

	require.NoError(t, df.SetFocus("r1"))
	v, err := df.GetValue("notes")
	require.NoError(t, err)
	require.Equal(t, "note|note", v, "append mode always runs and accumulates with the separator")
}

func TestExecuteStepSideEffectAlwaysRuns(t *testing.T) {
	var calls int
	reg := registry.New([]registry.Entry{
		{
			Name:   "ping",
			Params: []string{},
			Impl: func(_ *registry.Context, _ map[string]any) (any, error) {
				calls++
				return "ignored", nil
			},
		},
	})
	cfg := ifacecfg.ComputeConfig{
		Compute: []ifacecfg.ComputeSpec{
			{Function: "ping", Mode: ifacecfg.Replace},
		},
	}
	sched, _ := newTestScheduler(t, reg, cfg)

	require.NoError(t, sched.RunAll())
	require.NoError(t, sched.RunAll())
	require.Equal(t, 4, calls, "side-effect steps run for every row on every pass")
}

func TestExecuteStepMultiOutputShapeMismatch(t *testing.T) {
	reg := registry.New([]registry.Entry{
		{
			Name:   "split",
			Params: []string{"value"},
			Impl: func(_ *registry.Context, args map[string]any) (any, error) {
				return []any{1}, nil // declares two targets below but returns one
			},
		},
	})
	cfg := ifacecfg.ComputeConfig{
		Compute: []ifacecfg.ComputeSpec{
			{
				Function: "split",
				Field:    ifacecfg.Field{Names: []string{"a", "b"}},
				Mode:     ifacecfg.Replace,
				StepArgs: resolve.StepArgs{RowArgs: map[string]string{"value": "x"}},
			},
		},
	}
	sched, _ := newTestScheduler(t, reg, cfg)

	err := sched.RunAll()
	require.Error(t, err)
}

func TestRunOnChangeOnlyRunsReferencingSteps(t *testing.T) {
	var yCalls, zCalls int
	reg := registry.New([]registry.Entry{
		{
			Name:   "incY",
			Params: []string{"value"},
			Impl: func(_ *registry.Context, args map[string]any) (any, error) {
				yCalls++
				return "y", nil
			},
		},
		{
			Name:   "incZ",
			Params: []string{"value"},
			Impl: func(_ *registry.Context, args map[string]any) (any, error) {
				zCalls++
				return "z", nil
			},
		},
	})
	cfg := ifacecfg.ComputeConfig{
		Compute: []ifacecfg.ComputeSpec{
			{
				Function: "incY",
				Field:    ifacecfg.Field{Names: []string{"y"}},
				Mode:     ifacecfg.Replace,
				Refresh:  true,
				StepArgs: resolve.StepArgs{RowArgs: map[string]string{"value": "x"}},
			},
			{
				Function: "incZ",
				Field:    ifacecfg.Field{Names: []string{"z"}},
				Mode:     ifacecfg.Replace,
				Refresh:  true,
				StepArgs: resolve.StepArgs{RowArgs: map[string]string{"value": "otherColumn"}},
			},
		},
	}
	sched, _ := newTestScheduler(t, reg, cfg)

	require.NoError(t, sched.RunOnChange("r1", "x"))
	require.Equal(t, 1, yCalls, "step referencing the trigger column via row_args must run")
	require.Equal(t, 0, zCalls, "step referencing a different column must not run")
}
