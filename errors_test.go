package tasktree

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTagBranch(t *testing.T) {
	require.NoError(t, tagBranch(nil, uuid.New()))

	boom := errors.New("boom")
	first := uuid.New()

	tagged := tagBranch(boom, first)
	require.ErrorIs(t, tagged, boom)

	id, ok := ExtractBranchID(tagged)
	require.True(t, ok)
	require.Equal(t, first, id)

	// propagating through an ancestor frame keeps the original tag
	again := tagBranch(tagged, uuid.New())
	id, ok = ExtractBranchID(again)
	require.True(t, ok)
	require.Equal(t, first, id)
}

func TestTagBranch_Wrapped(t *testing.T) {
	boom := errors.New("boom")
	id := uuid.New()
	wrapped := fmt.Errorf("outer: %w", tagBranch(boom, id))

	got, ok := ExtractBranchID(wrapped)
	require.True(t, ok)
	require.Equal(t, id, got)

	var be *BranchError
	require.True(t, errors.As(wrapped, &be))
	require.Equal(t, id, be.Branch())
	require.Equal(t, "boom", be.Error())
}

func TestExtractBranchID_Untagged(t *testing.T) {
	_, ok := ExtractBranchID(errors.New("plain"))
	require.False(t, ok)
}
