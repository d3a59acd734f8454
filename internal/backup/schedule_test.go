package backup

import (
	"path/filepath"
	"testing"
	"time"
)

func TestIsDue(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	past := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name     string
		interval string
		last     *time.Time
		want     bool
	}{
		{"off never due", IntervalOff, nil, false},
		{"off ignores elapsed time", IntervalOff, past(365 * 24 * time.Hour), false},
		{"unknown interval never due", "hourly", nil, false},
		{"never backed up is due", IntervalDaily, nil, true},
		{"daily just under", IntervalDaily, past(24*time.Hour - time.Second), false},
		{"daily exactly elapsed", IntervalDaily, past(24 * time.Hour), true},
		{"daily over", IntervalDaily, past(25 * time.Hour), true},
		{"weekly just under", IntervalWeekly, past(7*24*time.Hour - time.Minute), false},
		{"weekly elapsed", IntervalWeekly, past(7 * 24 * time.Hour), true},
		{"monthly is thirty days", IntervalMonthly, past(30 * 24 * time.Hour), true},
		{"monthly just under", IntervalMonthly, past(30*24*time.Hour - time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(tt.interval, tt.last, now); got != tt.want {
				t.Errorf("IsDue(%s) = %v, want %v", tt.interval, got, tt.want)
			}
		})
	}
}

func TestNextDue(t *testing.T) {
	last := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)

	if next := NextDue(IntervalOff, &last); next != nil {
		t.Errorf("off interval must have no next due time, got %v", next)
	}

	next := NextDue(IntervalWeekly, &last)
	if next == nil {
		t.Fatal("weekly interval must have a next due time")
	}
	if want := last.Add(7 * 24 * time.Hour); !next.Equal(want) {
		t.Errorf("NextDue = %v, want %v", next, want)
	}

	// No prior backup: the epoch base keeps the due time in the past.
	next = NextDue(IntervalDaily, nil)
	if next == nil {
		t.Fatal("expected a next due time")
	}
	if !next.Before(time.Now()) {
		t.Errorf("next due with no prior backup should be in the past, got %v", next)
	}
}

func TestScheduleIsDueNow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	last := now.Add(-2 * 24 * time.Hour)

	s := Schedule{Interval: IntervalDaily, LastBackupAt: &last}
	if !s.IsDueNow(now) {
		t.Error("daily schedule two days stale must be due")
	}
	s.Interval = IntervalWeekly
	if s.IsDueNow(now) {
		t.Error("weekly schedule two days in must not be due")
	}
}

func TestFileScheduleStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	store := FileScheduleStore(path)

	// Missing file loads as the default.
	s, err := store.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if s.Interval != IntervalOff || s.LastBackupAt != nil || s.AutoDownload {
		t.Errorf("expected default schedule, got %+v", s)
	}

	last := time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC)
	want := Schedule{Interval: IntervalWeekly, LastBackupAt: &last, AutoDownload: true}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Interval != IntervalWeekly || !got.AutoDownload {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.LastBackupAt == nil || !got.LastBackupAt.Equal(last) {
		t.Errorf("round trip lost last backup time: %v", got.LastBackupAt)
	}
}

func TestScheduleStore_RecordBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	store := FileScheduleStore(path)

	if err := store.Save(Schedule{Interval: IntervalDaily}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	s, err := store.RecordBackup(now)
	if err != nil {
		t.Fatalf("RecordBackup: %v", err)
	}
	if s.LastBackupAt == nil || !s.LastBackupAt.Equal(now) {
		t.Errorf("stamp not applied: %v", s.LastBackupAt)
	}
	if s.Interval != IntervalDaily {
		t.Errorf("interval must survive stamping, got %s", s.Interval)
	}

	// Persisted, not just returned.
	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.LastBackupAt == nil || !reloaded.LastBackupAt.Equal(now) {
		t.Errorf("stamp not persisted: %v", reloaded.LastBackupAt)
	}
	if s.IsDueNow(now) {
		t.Error("freshly stamped daily schedule must not be due")
	}
}
