package dataframe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMissing(t *testing.T) {
	cases := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"non-empty string", "x", false},
		{"NaN", math.NaN(), true},
		{"zero", 0, false},
		{"false", false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, IsMissing(c.v))
		})
	}
}

func TestAddColumnAndGetValue(t *testing.T) {
	df := New("id", []string{"r1", "r2"})
	require.NoError(t, df.AddColumn("price", KindInput, map[string]any{"r1": 1.5, "r2": 2.5}))

	require.NoError(t, df.SetFocus("r1"))
	v, err := df.GetValue("price")
	require.NoError(t, err)
	require.Equal(t, 1.5, v)

	require.Error(t, df.AddColumn("price", KindCache, nil), "duplicate canonical name must fail")
}

func TestSetValueAutocache(t *testing.T) {
	df := New("id", []string{"r1"})
	require.NoError(t, df.SetFocus("r1"))

	require.NoError(t, df.SetValue("total", 42))
	v, err := df.GetValue("total")
	require.NoError(t, err)
	require.Equal(t, 42, v)

	mutable, err := df.IsMutable("total")
	require.NoError(t, err)
	require.True(t, mutable, "autocached column must be a mutable cache kind")
}

func TestSetValueAutocacheDisabled(t *testing.T) {
	df := New("id", []string{"r1"}, WithAutocacheDisabled())
	require.NoError(t, df.SetFocus("r1"))
	require.Error(t, df.SetValue("total", 42))
}

func TestImmutableColumnRejectsWrite(t *testing.T) {
	df := New("id", []string{"r1"})
	require.NoError(t, df.AddColumn("source", KindInput, map[string]any{"r1": "x"}))
	require.NoError(t, df.SetFocus("r1"))
	require.Error(t, df.SetValue("source", "y"))
}

func TestUpdateNameColumnMapPolicy(t *testing.T) {
	df := New("id", []string{"r1"})
	require.NoError(t, df.AddColumn("raw_label", KindInput, map[string]any{"r1": "x"}))

	// Identity mapping is default (storage label is already a valid
	// identifier); overriding it with a new canonical name must succeed.
	require.NoError(t, df.UpdateNameColumnMap("niceName", "raw_label"))
	require.NoError(t, df.SetFocus("r1"))
	v, err := df.GetValue("niceName")
	require.NoError(t, err)
	require.Equal(t, "x", v)

	// Re-applying the same name is a no-op success.
	require.NoError(t, df.UpdateNameColumnMap("niceName", "raw_label"))

	// A second, different mapping against the now user-declared entry
	// must fail.
	err = df.UpdateNameColumnMap("otherName", "raw_label")
	require.Error(t, err)
}

func TestGetComputeIndex(t *testing.T) {
	df := New("id", []string{"r1", "r2"})

	_, ok := df.GetComputeIndex(nil, true)
	require.False(t, ok, "no row focused")

	require.NoError(t, df.SetFocus("r1"))
	_, ok = df.GetComputeIndex(nil, false)
	require.False(t, ok, "hasCompute false")

	key, ok := df.GetComputeIndex(map[string]bool{"r2": true}, true)
	require.False(t, ok, "focused row not in index set")
	require.Empty(t, key)

	key, ok = df.GetComputeIndex(map[string]bool{"r1": true}, true)
	require.True(t, ok)
	require.Equal(t, "r1", key)
}

func TestApplyDefaultNaming(t *testing.T) {
	df := New("id", []string{"r1"})
	require.NoError(t, df.AddColumn("first name", KindInput, map[string]any{"r1": "Ada"}))
	require.NoError(t, df.AddColumn("age", KindInput, map[string]any{"r1": 30}))

	df.ApplyDefaultNaming()

	require.True(t, df.HasColumn("firstName"), "non-identifier label should camelCase")
	require.False(t, df.HasColumn("first name"))
	require.True(t, df.HasColumn("age"), "valid identifier keeps identity mapping")
}

func TestAddColumnsBatched(t *testing.T) {
	df := New("id", []string{"r1", "r2"})
	require.NoError(t, df.AddColumns([]string{"a", "b", "c"}, KindCache))
	for _, name := range []string{"a", "b", "c"} {
		require.True(t, df.HasColumn(name))
	}
}
