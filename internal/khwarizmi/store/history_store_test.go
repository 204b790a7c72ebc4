package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

func newStores(t *testing.T) map[string]HistoryStore {
	t.Helper()

	sqlite, err := NewSQLiteHistoryStore(SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "history", "history.db"),
	})
	if err != nil {
		t.Fatalf("NewSQLiteHistoryStore() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]HistoryStore{
		"sqlite": sqlite,
		"memory": NewMemoryHistoryStore(),
	}
}

func TestHistoryStore_RecordAndQuery(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			inputs := []string{"2x+3=7", "10/x=2", "x+y=3"}
			for i, input := range inputs {
				entry := &Entry{
					Timestamp: base.Add(time.Duration(i) * time.Minute),
					Input:     input,
					Output:    "x = 2",
					Steps:     2,
					Source:    "cli",
				}
				if i == 2 {
					entry.Status = StatusFailed
					entry.Output = ""
					entry.ErrorCode = "MULTIPLE_VARIABLES"
				}
				if err := s.Record(ctx, entry); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
				if entry.ID == "" {
					t.Error("Record() should assign an ID")
				}
			}

			entries, err := s.Query(ctx, Filter{})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("Query() returned %d entries, want 3", len(entries))
			}
			if entries[0].Input != "x+y=3" || entries[2].Input != "2x+3=7" {
				t.Errorf("Query() order = %q..%q, want newest first", entries[0].Input, entries[2].Input)
			}
			if entries[0].ErrorCode != "MULTIPLE_VARIABLES" {
				t.Errorf("ErrorCode = %q", entries[0].ErrorCode)
			}

			limited, _ := s.Query(ctx, Filter{Limit: 1, Offset: 1})
			if len(limited) != 1 || limited[0].Input != "10/x=2" {
				t.Errorf("Query(limit 1, offset 1) = %v", limited)
			}

			failed, _ := s.Query(ctx, Filter{Status: StatusFailed})
			if len(failed) != 1 {
				t.Errorf("Query(status failed) returned %d entries, want 1", len(failed))
			}

			got, err := s.Get(ctx, entries[1].ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Input != "10/x=2" || got.Steps != 2 {
				t.Errorf("Get() = %+v", got)
			}
		})
	}
}

func TestHistoryStore_GetMissing(t *testing.T) {
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "missing")
			if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
				t.Errorf("Get() error = %v, want NOT_FOUND", err)
			}
		})
	}
}

func TestHistoryStore_Stats(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			s.Record(ctx, &Entry{Input: "x=1", Status: StatusSolved, DurationMs: 2})
			s.Record(ctx, &Entry{Input: "x=1/0", Status: StatusFailed, ErrorCode: "DIVISION_BY_ZERO", DurationMs: 4})
			s.Record(ctx, &Entry{Input: "2=3", Status: StatusFailed, ErrorCode: "NO_VARIABLE_PATH", DurationMs: 6})

			stats, err := s.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if stats.Total != 3 || stats.Solved != 1 || stats.Failed != 2 {
				t.Errorf("Stats() = %+v", stats)
			}
			if stats.ByErrorCode["DIVISION_BY_ZERO"] != 1 {
				t.Errorf("ByErrorCode = %v", stats.ByErrorCode)
			}
			if stats.AvgDurationMs != 4 {
				t.Errorf("AvgDurationMs = %v, want 4", stats.AvgDurationMs)
			}
		})
	}
}

func TestHistoryStore_Prune(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			s.Record(ctx, &Entry{Input: "x=1", Timestamp: time.Now().Add(-48 * time.Hour)})
			s.Record(ctx, &Entry{Input: "x=2"})

			removed, err := s.Prune(ctx, 24*time.Hour)
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if removed != 1 {
				t.Errorf("Prune() removed %d, want 1", removed)
			}

			entries, _ := s.Query(ctx, Filter{})
			if len(entries) != 1 || entries[0].Input != "x=2" {
				t.Errorf("after Prune() entries = %v", entries)
			}
		})
	}
}

func TestHistoryStore_Ping(t *testing.T) {
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Ping(context.Background()); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}
