package viewstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker_DiscardsSupersededResult(t *testing.T) {
	var tr Tracker[string]

	first := tr.Begin()
	second := tr.Begin()
	require.False(t, tr.Latest(first))

	require.True(t, tr.Publish(second, "report 2"))
	require.False(t, tr.Publish(first, "report 1"))

	value, _, ok := tr.Current()
	require.True(t, ok)
	require.Equal(t, "report 2", value)
}

func TestTracker_LateOlderResultAfterNewerBegins(t *testing.T) {
	var tr Tracker[int]

	first := tr.Begin()
	_ = tr.Begin()

	require.False(t, tr.Publish(first, 1))
	_, _, ok := tr.Current()
	require.False(t, ok)
}

func TestTracker_PublishOnce(t *testing.T) {
	var tr Tracker[int]
	seq := tr.Begin()
	require.True(t, tr.Publish(seq, 1))
	require.False(t, tr.Publish(seq, 2))

	value, updated, _ := tr.Current()
	require.Equal(t, 1, value)
	require.False(t, updated.IsZero())
}

func TestTracker_ConcurrentFetches(t *testing.T) {
	var tr Tracker[uint64]
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := tr.Begin()
			tr.Publish(seq, seq)
		}()
	}
	wg.Wait()

	value, _, ok := tr.Current()
	require.True(t, ok)
	require.Equal(t, uint64(32), value)
}
