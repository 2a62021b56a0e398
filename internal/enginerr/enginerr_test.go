package enginerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepContextString(t *testing.T) {
	require.Equal(t, "step 2 (double)", StepContext{Index: 2, Name: "double"}.String())
	require.Equal(t, `step 2 (double), field "y"`, StepContext{Index: 2, Name: "double", Field: "y"}.String())
}

func TestErrorMessagesIncludeContext(t *testing.T) {
	cfg := &ConfigError{Step: StepContext{Index: 1, Name: "f"}, Msg: "missing key"}
	require.Contains(t, cfg.Error(), "step 1 (f)")
	require.Contains(t, cfg.Error(), "missing key")

	shape := &ShapeError{Step: StepContext{Index: 0, Name: "split"}, Expected: 2, Got: 1}
	require.Contains(t, shape.Error(), "expected 2")
	require.Contains(t, shape.Error(), "got 1")

	conflict := &MappingConflictError{Name: "a", Column: "col", ExistingName: "b"}
	require.Contains(t, conflict.Error(), `"a"`)
	require.Contains(t, conflict.Error(), `"b"`)
}

func TestExternalErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	ext := &ExternalError{Err: inner}
	require.ErrorIs(t, ext, inner)

	var target *ExternalError
	require.True(t, errors.As(ext, &target))
}
