package scheduler

import (
	"testing"
	"time"
)

func testScheduler(t *testing.T) *Scheduler {
	t.Helper()
	return NewScheduler(nil, nil, nil, "America/New_York")
}

func TestNextDaily(t *testing.T) {
	s := testScheduler(t)

	// Before the firing time: fires today.
	now := time.Date(2026, 8, 28, 6, 0, 0, 0, s.loc)
	next := s.nextDaily(now, 7, 30)
	want := time.Date(2026, 8, 28, 7, 30, 0, 0, s.loc)
	if !next.Equal(want) {
		t.Errorf("nextDaily before = %v, want %v", next, want)
	}

	// After the firing time: fires tomorrow.
	now = time.Date(2026, 8, 28, 8, 0, 0, 0, s.loc)
	next = s.nextDaily(now, 7, 30)
	want = time.Date(2026, 8, 29, 7, 30, 0, 0, s.loc)
	if !next.Equal(want) {
		t.Errorf("nextDaily after = %v, want %v", next, want)
	}

	// Exactly at the firing time: strictly after, so tomorrow.
	now = time.Date(2026, 8, 28, 7, 30, 0, 0, s.loc)
	if next = s.nextDaily(now, 7, 30); !next.Equal(want) {
		t.Errorf("nextDaily at boundary = %v, want %v", next, want)
	}
}

func TestNextWeekly(t *testing.T) {
	s := testScheduler(t)

	// 2026-08-28 is a Friday.
	friday := time.Date(2026, 8, 28, 8, 0, 0, 0, s.loc)

	// Next Monday 09:00 from a Friday.
	next := s.nextWeekly(friday, time.Monday, 9, 0)
	want := time.Date(2026, 8, 31, 9, 0, 0, 0, s.loc)
	if !next.Equal(want) {
		t.Errorf("next Monday = %v, want %v", next, want)
	}

	// Friday 15:00 later the same day.
	next = s.nextWeekly(friday, time.Friday, 15, 0)
	want = time.Date(2026, 8, 28, 15, 0, 0, 0, s.loc)
	if !next.Equal(want) {
		t.Errorf("same-day Friday = %v, want %v", next, want)
	}

	// Friday 15:00 after it has passed: a week out.
	lateFriday := time.Date(2026, 8, 28, 16, 0, 0, 0, s.loc)
	next = s.nextWeekly(lateFriday, time.Friday, 15, 0)
	want = time.Date(2026, 9, 4, 15, 0, 0, 0, s.loc)
	if !next.Equal(want) {
		t.Errorf("passed Friday = %v, want %v", next, want)
	}
}

func TestUnknownTimezoneFallsBackToUTC(t *testing.T) {
	s := NewScheduler(nil, nil, nil, "Mars/Olympus_Mons")
	if s.loc != time.UTC {
		t.Errorf("loc = %v, want UTC", s.loc)
	}
}

func TestRunJobRecoversPanic(t *testing.T) {
	s := testScheduler(t)

	// Must not crash the test binary.
	s.runJob(job{
		name: "explosive",
		run:  func() { panic("boom") },
	})
}

func TestStopTerminatesLoops(t *testing.T) {
	s := testScheduler(t)

	done := make(chan struct{})
	go func() {
		s.loop(job{
			name: "idle",
			next: func(now time.Time) time.Time { return now.Add(time.Hour) },
			run:  func() {},
		})
		close(done)
	}()

	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}
