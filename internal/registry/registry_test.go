package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupUnknownFunction(t *testing.T) {
	reg := New()
	_, err := reg.Lookup("nope")
	require.Error(t, err)
}

func TestLastWinsAcrossGroups(t *testing.T) {
	base := []Entry{{Name: "sum", Params: []string{"a"}, Doc: "base"}}
	ext := []Entry{{Name: "sum", Params: []string{"a", "b"}, Doc: "extension"}}

	reg := New(base, ext)
	got, err := reg.Lookup("sum")
	require.NoError(t, err)
	require.Equal(t, "extension", got.Doc, "later group must win on name collision")
}

func TestRegisterExtendsInPlace(t *testing.T) {
	reg := New([]Entry{{Name: "a"}})
	reg.Register([]Entry{{Name: "b"}})

	names := reg.Names()
	require.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestBaseGroupRenderLiquid(t *testing.T) {
	engine := NewLiquidEngine("")
	reg := New(BaseGroup(engine))

	entry, err := reg.Lookup("render_liquid")
	require.NoError(t, err)

	out, err := entry.Impl(nil, map[string]any{
		"template": "hi {{ who }}",
		"context":  map[string]any{"who": "there"},
	})
	require.NoError(t, err)
	require.Equal(t, "hi there", out)
}

func TestBaseGroupTodayDefaultsFormat(t *testing.T) {
	engine := NewLiquidEngine("")
	reg := New(BaseGroup(engine))

	entry, err := reg.Lookup("today")
	require.NoError(t, err)

	out, err := entry.Impl(nil, map[string]any{})
	require.NoError(t, err)
	s, ok := out.(string)
	require.True(t, ok)
	require.Len(t, s, len("2026-08-01"), "default %Y-%m-%d format should produce a 10-char date")
}

func TestHasParam(t *testing.T) {
	e := Entry{Params: []string{"a", "b"}}
	require.True(t, e.hasParam("a"))
	require.False(t, e.hasParam("c"))
}
