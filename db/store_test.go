package db

import (
	"path/filepath"
	"testing"

	"github.com/kickclipz/Masterclipper/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "clips.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetUserCount_Absent(t *testing.T) {
	s := newTestStore(t)

	uc, err := s.GetUserCount("g1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc != nil {
		t.Fatalf("expected nil record for unknown user, got %+v", uc)
	}
}

func TestCreditClip_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	rec := model.ClipRecord{
		GuildID: "g1", ChannelID: "c1", MessageID: "m1", UserID: "u1",
		URLHash: "hash-1", URL: "https://youtu.be/xyz", TS: 1000,
	}
	uc := model.UserCount{
		GuildID: "g1", UserID: "u1",
		TotalCount: 1, DayDate: "2025-06-10", DayCount: 1, LastTS: 1000,
	}

	credited, err := s.CreditClip(rec, uc)
	if err != nil || !credited {
		t.Fatalf("expected credit, got credited=%v err=%v", credited, err)
	}

	counted, err := s.AlreadyCounted("g1", "u1", "hash-1")
	if err != nil || !counted {
		t.Fatalf("expected hash to be counted, got %v err=%v", counted, err)
	}
	counted, err = s.AlreadyCounted("g1", "u2", "hash-1")
	if err != nil || counted {
		t.Fatalf("dedup must be per user, got %v err=%v", counted, err)
	}

	got, err := s.GetUserCount("g1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCount != 1 || got.DayCount != 1 || got.DayDate != "2025-06-10" || got.LastTS != 1000 {
		t.Fatalf("unexpected counter state: %+v", got)
	}
}

func TestCreditClip_DuplicateRaceIsNoOp(t *testing.T) {
	s := newTestStore(t)

	rec := model.ClipRecord{
		GuildID: "g1", ChannelID: "c1", MessageID: "m1", UserID: "u1",
		URLHash: "hash-1", URL: "https://youtu.be/xyz", TS: 1000,
	}
	uc := model.UserCount{GuildID: "g1", UserID: "u1", TotalCount: 1, DayDate: "2025-06-10", DayCount: 1, LastTS: 1000}

	if credited, err := s.CreditClip(rec, uc); err != nil || !credited {
		t.Fatalf("first credit failed: credited=%v err=%v", credited, err)
	}

	// Same hash again: must not error and must not touch the counter.
	uc.TotalCount = 2
	rec.MessageID = "m2"
	credited, err := s.CreditClip(rec, uc)
	if err != nil {
		t.Fatalf("duplicate insert must be a no-op, got %v", err)
	}
	if credited {
		t.Fatalf("expected credited=false on duplicate hash")
	}

	got, err := s.GetUserCount("g1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCount != 1 {
		t.Fatalf("duplicate race must not change the total, got %d", got.TotalCount)
	}
}

func TestSaveDayDate_UpsertsRow(t *testing.T) {
	s := newTestStore(t)

	// First event ever can be a rejection; the row must still appear with
	// today's date.
	if err := s.SaveDayDate("g1", "u1", "2025-06-10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.GetUserCount("g1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.DayDate != "2025-06-10" || got.TotalCount != 0 {
		t.Fatalf("unexpected record after upsert: %+v", got)
	}

	if err := s.SaveDayDate("g1", "u1", "2025-06-11"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = s.GetUserCount("g1", "u1")
	if got.DayDate != "2025-06-11" || got.TotalCount != 0 {
		t.Fatalf("expected only the date to move, got %+v", got)
	}
}
