package entries

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/client/diary"
	"github.com/dmitrijs2005/caresupport/internal/client/storage"
	"github.com/dmitrijs2005/caresupport/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var at = time.Date(2025, 3, 1, 9, 30, 0, 123, time.UTC)

func TestCheckIns_InsertionOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	// ids sort opposite to insertion order on purpose
	c1 := diary.CheckIn{ID: "z", CreatedAt: at, Mood: diary.MoodHappy, Energy: 5, Note: "walked"}
	c2 := diary.CheckIn{ID: "a", CreatedAt: at.Add(time.Hour), Mood: diary.MoodSad, Energy: 1}
	require.NoError(t, r.AddCheckIn(ctx, "u-1", c1))
	require.NoError(t, r.AddCheckIn(ctx, "u-1", c2))
	require.NoError(t, r.AddCheckIn(ctx, "u-2", diary.CheckIn{ID: "other", CreatedAt: at, Mood: diary.MoodOK, Energy: 3}))

	got, err := r.CheckIns(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []diary.CheckIn{c1, c2}, got)
}

func TestCheckIns_RejectsOutOfRangeEnergy(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	err := r.AddCheckIn(context.Background(), "u-1", diary.CheckIn{ID: "x", CreatedAt: at, Mood: diary.MoodOK, Energy: 9})
	require.ErrorContains(t, err, "failed to insert check-in")
}

func TestEntries(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	e1 := diary.Entry{ID: "e1", CreatedAt: at, Text: "Felt dizzy"}
	e2 := diary.Entry{ID: "e2", CreatedAt: at.Add(time.Minute), Text: "Headache"}
	require.NoError(t, r.AddEntry(ctx, "u-1", e1))
	require.NoError(t, r.AddEntry(ctx, "u-1", e2))

	got, err := r.Entries(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []diary.Entry{e1, e2}, got)

	none, err := r.Entries(ctx, "u-2")
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.Error(t, r.AddEntry(ctx, "u-1", diary.Entry{ID: "e1", CreatedAt: at, Text: "dup id"}))
}

func TestTaskStates_Upsert(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetTaskDone(ctx, "u-1", "water", true))
	require.NoError(t, r.SetTaskDone(ctx, "u-1", "rest", true))
	require.NoError(t, r.SetTaskDone(ctx, "u-1", "rest", false))

	got, err := r.TaskStates(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"water": true, "rest": false}, got)
}

func TestDeleteUser(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.AddCheckIn(ctx, "u-1", diary.CheckIn{ID: "c", CreatedAt: at, Mood: diary.MoodOK, Energy: 3}))
	require.NoError(t, r.AddEntry(ctx, "u-1", diary.Entry{ID: "e", CreatedAt: at, Text: "Fever"}))
	require.NoError(t, r.SetTaskDone(ctx, "u-1", "water", true))
	require.NoError(t, r.AddEntry(ctx, "u-2", diary.Entry{ID: "keep", CreatedAt: at, Text: "Nausea"}))

	require.NoError(t, r.DeleteUser(ctx, "u-1"))

	checkIns, err := r.CheckIns(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, checkIns)
	states, err := r.TaskStates(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, states)

	kept, err := r.Entries(ctx, "u-2")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestWithinTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		require.NoError(t, r.AddEntry(ctx, "u-1", diary.Entry{ID: "e", CreatedAt: at, Text: "Pain"}))
		return r.DeleteUser(ctx, "u-1")
	})
	require.NoError(t, err)

	got, err := NewSQLiteRepository(db).Entries(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreOverSQLite(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	s := diary.NewStore("u-1", NewSQLiteRepository(db))
	a, err := s.AppendCheckIn(ctx, diary.MoodOK, 3, "a")
	require.NoError(t, err)
	b, err := s.AppendCheckIn(ctx, diary.MoodTired, 2, "b")
	require.NoError(t, err)
	require.NoError(t, s.ToggleTask(ctx, "movement"))

	reloaded := diary.NewStore("u-1", NewSQLiteRepository(db))
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, []diary.CheckIn{b, a}, reloaded.RecentCheckIns(5))
	assert.True(t, reloaded.Tasks()[2].Done)
}

func TestErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.CheckIns(ctx, "u")
	require.ErrorContains(t, err, "failed to select check-ins")
	_, err = r.Entries(ctx, "u")
	require.ErrorContains(t, err, "failed to select diary entries")
	_, err = r.TaskStates(ctx, "u")
	require.ErrorContains(t, err, "failed to select task states")
	require.ErrorContains(t, r.SetTaskDone(ctx, "u", "water", true), "failed to save task state[water]")
}
