package tasktree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvent_Kinds(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		ev       Event[int]
		terminal bool
		hasValue bool
		value    int
		err      error
	}{
		{name: "more", ev: More(7), terminal: false, hasValue: true, value: 7},
		{name: "last", ev: Last(9), terminal: true, hasValue: true, value: 9},
		{name: "done", ev: Done[int](), terminal: true, hasValue: false},
		{name: "fail", ev: Fail[int](boom), terminal: true, hasValue: false, err: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.terminal, tt.ev.Terminal())
			require.Equal(t, tt.hasValue, tt.ev.HasValue())
			require.Equal(t, tt.value, tt.ev.Value())
			require.Equal(t, tt.err, tt.ev.Err())
		})
	}
}

func TestMail_TakeResets(t *testing.T) {
	cfg, err := buildConfig(nil)
	require.NoError(t, err)
	tr := newTree(cfg, func([]int) {})
	f := newFlow(context.Background(), tr, nil, nil, nil, locWorker)

	m := f.takeMail()
	require.False(t, m.resumed)
	require.Same(t, f, m.flow)

	f.mail = resumedMail(More(3))
	m = f.takeMail()
	require.True(t, m.resumed)
	require.Equal(t, 3, m.event.Value())

	// the slot is suspended again after every take
	m = f.takeMail()
	require.False(t, m.resumed)
}
