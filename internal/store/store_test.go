package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestTablesMatchEventSchemas(t *testing.T) {
	s := openTestStore(t)

	tables := map[string][]string{
		sessionEventsTable:    sessionEventColumns,
		submissionEventsTable: submissionEventColumns,
	}
	for table, want := range tables {
		rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
		require.NoError(t, err)

		var got []string
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			got = append(got, name)
		}
		require.NoError(t, rows.Err())
		rows.Close()

		assert.Equal(t, want, got, table)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", TouristID: "t1", Action: ActionStart, QuestionsTotal: 12,
	}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	events, err := s.EventRepo().QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "s1", events[0].SessionID)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", TouristID: "t1", Action: ActionStart}))
	require.NoError(t, repo.AppendSubmissionEvent(ctx, SubmissionEventData{SessionID: "s1", TouristID: "t1", Outcome: OutcomeSuccess}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", TouristID: "t1", Action: ActionComplete}))

	sessions, err := repo.QuerySessionEvents(ctx, QueryOpts{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	subs, err := repo.QuerySubmissionEvents(ctx, QueryOpts{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, subs, 1)

	if sessions[0].Sequence != 1 || subs[0].Sequence != 2 || sessions[1].Sequence != 3 {
		t.Errorf("sequences = %d, %d, %d, want 1, 2, 3",
			sessions[0].Sequence, subs[0].Sequence, sessions[1].Sequence)
	}
}

func TestSessionEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:         "s1",
		TouristID:         "t1",
		Action:            ActionComplete,
		QuestionsTotal:    12,
		QuestionsAnswered: 12,
		Scores:            map[string]int{"buceo": 3, "aves": 2},
	}))

	events, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, ActionComplete, e.Action)
	assert.Equal(t, 12, e.QuestionsAnswered)
	assert.Equal(t, map[string]int{"buceo": 3, "aves": 2}, e.Scores)
	assert.True(t, e.Timestamp.After(before), "timestamp %v should be after %v", e.Timestamp, before)
}

func TestSessionEventNilScoresStoredEmpty(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", TouristID: "t1", Action: ActionStart}))

	events, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Scores)
}

func TestQuerySubmissionEventsNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.AppendSubmissionEvent(ctx, SubmissionEventData{
			SessionID: id, TouristID: "t1", Outcome: OutcomeSuccess,
		}))
	}

	events, err := repo.QuerySubmissionEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "c", events[0].SessionID)
	assert.Equal(t, "b", events[1].SessionID)
}

func TestQuerySubmissionEventsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []SubmissionEventData{
		{SessionID: "a", TouristID: "t1", Outcome: OutcomeSuccess},
		{SessionID: "b", TouristID: "t1", Outcome: OutcomeRejected, StatusCode: 422},
		{SessionID: "c", TouristID: "t1", Outcome: OutcomeTransport},
	}
	for _, d := range data {
		require.NoError(t, repo.AppendSubmissionEvent(ctx, d))
	}

	rejected, err := repo.QuerySubmissionEvents(ctx, QueryOpts{Outcome: OutcomeRejected})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, 422, rejected[0].StatusCode)

	after, err := repo.QuerySubmissionEvents(ctx, QueryOpts{After: 1})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	future, err := repo.QuerySubmissionEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestGetSubmissionEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSubmissionEvent(ctx, SubmissionEventData{
		SessionID:    "s1",
		TouristID:    "t1",
		Endpoint:     "http://example.test/preferences",
		Payload:      `{"TouristID":"t1"}`,
		StatusCode:   500,
		Outcome:      OutcomeRejected,
		ErrorMessage: "db down",
		LatencyMs:    42,
	}))

	events, err := repo.QuerySubmissionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	got, err := repo.GetSubmissionEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "db down", got.ErrorMessage)
	assert.Equal(t, `{"TouristID":"t1"}`, got.Payload)
	assert.Equal(t, int64(42), got.LatencyMs)

	missing, err := repo.GetSubmissionEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubmissionStatsByOutcome(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []SubmissionEventData{
		{SessionID: "a", Outcome: OutcomeSuccess, LatencyMs: 10},
		{SessionID: "b", Outcome: OutcomeSuccess, LatencyMs: 30},
		{SessionID: "c", Outcome: OutcomeTransport, LatencyMs: 5},
	}
	for _, d := range data {
		require.NoError(t, repo.AppendSubmissionEvent(ctx, d))
	}

	stats, err := repo.SubmissionStatsByOutcome(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, SubmissionStats{Outcome: OutcomeSuccess, Count: 2, AvgLatencyMs: 20}, stats[0])
	assert.Equal(t, SubmissionStats{Outcome: OutcomeTransport, Count: 1, AvgLatencyMs: 5}, stats[1])
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("TOURPREF_DB", want)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestDefaultDBPathXDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("TOURPREF_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "tourpref", "tourpref.db"), got)
}

func TestSessionLockExclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := AcquireSessionLock(dir, "tourist-1")
	require.NoError(t, err)

	_, err = AcquireSessionLock(dir, "tourist-1")
	if !errors.Is(err, ErrSessionLocked) {
		t.Fatalf("second acquire error = %v, want ErrSessionLocked", err)
	}

	other, err := AcquireSessionLock(dir, "tourist-2")
	require.NoError(t, err, "different tourists must not contend")
	require.NoError(t, other.Release())

	require.NoError(t, first.Release())
	again, err := AcquireSessionLock(dir, "tourist-1")
	require.NoError(t, err)
	require.NoError(t, again.Release())
	require.NoError(t, again.Release())
}

func TestLockPathSanitizes(t *testing.T) {
	got := LockPath("/data", "../etc/passwd")
	assert.Equal(t, filepath.Join("/data", "locks", ".._etc_passwd.lock"), got)
}
