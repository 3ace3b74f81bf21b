package tasktree

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap_FansOut(t *testing.T) {
	got, err := Map(context.Background(), []int{1, 2, 3, 4},
		func(_ context.Context, v int) (string, error) {
			return strconv.Itoa(v * v), nil
		},
		WithCredit(2),
	)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"1", "4", "9", "16"}, got)
}

func TestMap_Empty(t *testing.T) {
	got, err := Map(context.Background(), nil,
		func(_ context.Context, v int) (int, error) { return v, nil })
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMap_FirstErrorCancelsRest(t *testing.T) {
	_, err := Map(context.Background(), []int{1, 2, 3},
		func(ctx context.Context, v int) (int, error) {
			if v == 2 {
				return 0, errFailedBranch
			}
			return v, nil
		},
		WithCredit(4),
	)
	require.ErrorIs(t, err, errFailedBranch)
}

func TestForEach_AppliesToAll(t *testing.T) {
	var sum atomic.Int64
	err := ForEach(context.Background(), []int{1, 2, 3, 4},
		func(_ context.Context, v int) error {
			sum.Add(int64(v))
			return nil
		},
		WithCredit(4),
	)
	require.NoError(t, err)
	require.EqualValues(t, 10, sum.Load())
}

func TestForEach_SequentialWithZeroCredit(t *testing.T) {
	var order []int
	err := ForEach(context.Background(), []int{1, 2, 3},
		func(_ context.Context, v int) error {
			order = append(order, v)
			return nil
		},
		WithCredit(0),
	)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, order)
}
