package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveResult(Result{SessionID: "a", Outcome: "succeeded", Progress: 100}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("RecentResults() = %d rows, expected 1", len(results))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

	saved := []Result{
		{SessionID: "s1", Outcome: "failed", Vitality: 0, Progress: 40, Elapsed: 51.5, Collected: 9, Player: "ana", CreatedAt: base},
		{SessionID: "s2", Outcome: "succeeded", Vitality: 22, Progress: 100, Elapsed: 47, Collected: 14, Player: "ana", CreatedAt: base.Add(time.Minute)},
		{SessionID: "s3", Outcome: "expired", Vitality: 60, Progress: 70, Elapsed: 60, Collected: 11, Player: "bo", Skipped: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range saved {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult(%s) failed: %v", r.SessionID, err)
		}
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("RecentResults() = %d rows, expected 3", len(results))
	}

	// Newest first
	wantOrder := []string{"s3", "s2", "s1"}
	for i, id := range wantOrder {
		if results[i].SessionID != id {
			t.Errorf("results[%d].SessionID = %s, expected %s", i, results[i].SessionID, id)
		}
	}

	got := results[0]
	if got.Outcome != "expired" || got.Vitality != 60 || got.Progress != 70 || got.Elapsed != 60 ||
		got.Collected != 11 || got.Player != "bo" || !got.Skipped {
		t.Errorf("results[0] = %+v, expected s3's fields", got)
	}
	if !got.CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("results[0].CreatedAt = %v, expected %v", got.CreatedAt, base.Add(2*time.Minute))
	}

	limited, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults(2) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("RecentResults(2) = %d rows, expected 2", len(limited))
	}
}

func TestStoreRejectsDuplicateSession(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(Result{SessionID: "dup", Outcome: "failed"}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult(Result{SessionID: "dup", Outcome: "failed"}); err == nil {
		t.Error("SaveResult() with a duplicate session id should fail")
	}
	if _, err := store.SaveResult(Result{Outcome: "failed"}); err == nil {
		t.Error("SaveResult() without a session id should fail")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() on an empty store = %+v", stats)
	}

	last := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)
	for _, r := range []Result{
		{SessionID: "a", Outcome: "succeeded", Progress: 100, CreatedAt: last.Add(-time.Hour)},
		{SessionID: "b", Outcome: "failed", Progress: 30, CreatedAt: last.Add(-2 * time.Hour)},
		{SessionID: "c", Outcome: "failed", Progress: 50, CreatedAt: last},
		{SessionID: "d", Outcome: "expired", Progress: 80, CreatedAt: last.Add(-3 * time.Hour)},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 4 || stats.Succeeded != 1 || stats.Failed != 2 || stats.Expired != 1 {
		t.Errorf("Stats() counts = %+v", stats)
	}
	if stats.BestProgress != 100 {
		t.Errorf("BestProgress = %v, expected 100", stats.BestProgress)
	}
	if stats.AvgProgress != 65 {
		t.Errorf("AvgProgress = %v, expected 65", stats.AvgProgress)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, last)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"a", "b"} {
		if _, err := store.SaveResult(Result{SessionID: id, Outcome: "expired"}); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("RecentResults() after Clear = %d rows, expected 0", len(results))
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", want, want},
		{"sqlite text", "2025-03-14 20:00:00", want},
		{"rfc3339", "2025-03-14T20:00:00Z", want},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseTime(tc.in); !got.Equal(tc.want) {
				t.Errorf("parseTime(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}
