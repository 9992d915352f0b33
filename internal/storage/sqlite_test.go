package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/paths"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	// Check that the file and its parents were created
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.snakepaths/runs.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".snakepaths", "runs.db"))
	assert.NoError(t, err)
}

func TestSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		Scenario: "loop-10x10",
		Rows:     10,
		Cols:     10,
		Snake:    "5,5 5,4 4,4 4,5",
		Depth:    4,
		Strategy: "exhaustive",
		Workers:  2,
		Count:    81,
		Elapsed:  1500 * time.Microsecond,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated IDs are UUIDs")

	got, err := store.RunByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "loop-10x10", got.Scenario)
	assert.Equal(t, uint64(81), got.Count)
	assert.Equal(t, 1500*time.Microsecond, got.Elapsed)
	assert.Equal(t, "5,5 5,4 4,4 4,5", got.Snake)
	assert.False(t, got.CreatedAt.IsZero())

	missing, err := store.RunByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "fixed", Rows: 3, Cols: 3, Snake: "0,0 0,1 0,2", Depth: 1, Strategy: "memo"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	_, err = store.SaveRun(Run{ID: "fixed", Rows: 3, Cols: 3, Snake: "0,0 0,1 0,2", Depth: 1, Strategy: "memo"})
	assert.Error(t, err, "IDs are unique")
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for depth := 1; depth <= 3; depth++ {
		_, err := store.SaveRun(Run{Rows: 3, Cols: 3, Snake: "0,0 0,1 0,2", Depth: depth, Strategy: "exhaustive"})
		require.NoError(t, err)
	}

	runs, err := store.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].Depth)
	assert.Equal(t, 2, runs[1].Depth)
}

func TestRunsForAndClear(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"hook-4x3", "hook-4x3", "ring-2x3"} {
		_, err := store.SaveRun(Run{Scenario: name, Rows: 4, Cols: 3, Snake: "x", Depth: 3, Strategy: "auto"})
		require.NoError(t, err)
	}

	runs, err := store.RunsFor("hook-4x3", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	require.NoError(t, store.ClearRuns("hook-4x3"))

	runs, err = store.RunsFor("hook-4x3", 0)
	require.NoError(t, err)
	assert.Empty(t, runs)

	runs, err = store.RunsFor("ring-2x3", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestLookupCount(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.LookupCount(4, 3, "2,2 3,2 3,1", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.SaveRun(Run{Rows: 4, Cols: 3, Snake: "2,2 3,2 3,1", Depth: 3, Strategy: "memo", Count: 12})
	require.NoError(t, err)

	count, ok, err := store.LookupCount(4, 3, "2,2 3,2 3,1", 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(12), count)

	_, ok, err = store.LookupCount(4, 3, "2,2 3,2 3,1", 4)
	require.NoError(t, err)
	assert.False(t, ok, "depth is part of the key")
}

func TestLargeCountRoundTrip(t *testing.T) {
	store := openTestStore(t)

	const big = uint64(1261293657)
	id, err := store.SaveRun(Run{Rows: 10, Cols: 10, Snake: "5,5 5,4 4,4 4,5", Depth: 20, Strategy: "memo", Count: big})
	require.NoError(t, err)

	got, err := store.RunByID(id)
	require.NoError(t, err)
	assert.Equal(t, big, got.Count)
}

func TestAllScenarioStats(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{Scenario: "a", Elapsed: 2 * time.Millisecond},
		{Scenario: "a", Elapsed: 4 * time.Millisecond},
		{Scenario: "b", Elapsed: time.Millisecond},
	} {
		r.Rows, r.Cols, r.Snake, r.Depth, r.Strategy = 3, 3, "0,0 0,1 0,2", 1, "exhaustive"
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	stats, err := store.AllScenarioStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "a", stats[0].Scenario)
	assert.Equal(t, 2, stats[0].Runs)
	assert.Equal(t, 3*time.Millisecond, stats[0].AvgElapsed)
	assert.Equal(t, 4*time.Millisecond, stats[0].MaxElapsed)
	assert.Equal(t, "b", stats[1].Scenario)
	assert.Equal(t, 1, stats[1].Runs)
}

func TestNewRun(t *testing.T) {
	in := paths.Input{Board: []int{4, 3}, Snake: [][]int{{2, 2}, {3, 2}, {3, 1}}, Depth: 3}
	res := paths.Result{Count: 7, Stats: paths.Stats{Strategy: core.StrategyExhaustive, Workers: 4, Elapsed: time.Second}}

	r := NewRun("adhoc", in, res)
	assert.Equal(t, Run{
		Scenario: "adhoc",
		Rows:     4,
		Cols:     3,
		Snake:    "2,2 3,2 3,1",
		Depth:    3,
		Strategy: "exhaustive",
		Workers:  4,
		Count:    7,
		Elapsed:  time.Second,
	}, r)
}
