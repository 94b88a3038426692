package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestParseRecurrence(t *testing.T) {
	cases := []struct {
		in      string
		want    Recurrence
		wantErr bool
	}{
		{"", RecurrenceNone, false},
		{"none", RecurrenceNone, false},
		{"daily", RecurrenceDaily, false},
		{"weekly", RecurrenceWeekly, false},
		{"monthly", RecurrenceMonthly, false},
		{"yearly", RecurrenceYearly, false},
		{"hourly", "", true},
		{"Daily", "", true},
	}

	for _, tc := range cases {
		got, err := ParseRecurrence(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRecurrence(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRecurrence(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRecurrence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRecurrenceValid(t *testing.T) {
	for _, r := range []Recurrence{RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly} {
		if !r.Valid() {
			t.Errorf("Expected %q to be valid", r)
		}
	}
	if Recurrence("biweekly").Valid() {
		t.Errorf("Expected 'biweekly' to be invalid")
	}
	if Recurrence("").Valid() {
		t.Errorf("Expected the empty recurrence to be invalid")
	}
}

func TestNextFire(t *testing.T) {
	// 2026-01-05 is a Monday.
	at := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		r    Recurrence
		now  time.Time
		want time.Time
	}{
		{
			name: "NoneReturnsStoredTimeEvenInPast",
			r:    RecurrenceNone,
			now:  time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
			want: at,
		},
		{
			name: "DailyBeforeClockTimeFiresToday",
			r:    RecurrenceDaily,
			now:  time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
			want: time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "DailyAfterClockTimeFiresTomorrow",
			r:    RecurrenceDaily,
			now:  time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC),
			want: time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "DailyExactlyAtClockTimeFiresNow",
			r:    RecurrenceDaily,
			now:  time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
			want: time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "WeeklyMidweekAdvancesToStoredWeekday",
			r:    RecurrenceWeekly,
			now:  time.Date(2026, 2, 11, 8, 0, 0, 0, time.UTC), // Wednesday
			want: time.Date(2026, 2, 16, 9, 30, 0, 0, time.UTC), // next Monday
		},
		{
			name: "WeeklySameWeekdayBeforeClockTimeFiresToday",
			r:    RecurrenceWeekly,
			now:  time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC), // Monday
			want: time.Date(2026, 2, 9, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "WeeklySameWeekdayAfterClockTimeFiresNextWeek",
			r:    RecurrenceWeekly,
			now:  time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC), // Monday
			want: time.Date(2026, 2, 16, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "MonthlyBeforeStoredDayFiresThisMonth",
			r:    RecurrenceMonthly,
			now:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 2, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "MonthlyAfterStoredDayFiresNextMonth",
			r:    RecurrenceMonthly,
			now:  time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "YearlyBeforeStoredDateFiresThisYear",
			r:    RecurrenceYearly,
			now:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "YearlyAfterStoredDateFiresNextYear",
			r:    RecurrenceYearly,
			now:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2027, 1, 5, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextFire(at, tc.r, tc.now)
			if !got.Equal(tc.want) {
				t.Errorf("NextFire(%s, %s, %s) = %s, want %s", at, tc.r, tc.now, got, tc.want)
			}
		})
	}
}

func TestLogSchedulerSchedule(t *testing.T) {
	var buf bytes.Buffer
	scheduler := LogScheduler{Out: &buf}

	handle, err := scheduler.Schedule(context.Background(), Request{
		Title:      "Reminder: call mom",
		At:         time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		Recurrence: RecurrenceWeekly,
	})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if handle == "" {
		t.Errorf("Expected a non-empty handle")
	}
	if !strings.Contains(buf.String(), handle) {
		t.Errorf("Expected log output to mention the handle, got: %s", buf.String())
	}
}

func TestLogSchedulerScheduleRejectsBadRequests(t *testing.T) {
	var buf bytes.Buffer
	scheduler := LogScheduler{Out: &buf}
	ctx := context.Background()

	if _, err := scheduler.Schedule(ctx, Request{At: time.Now(), Recurrence: "sometimes"}); err == nil {
		t.Errorf("Expected error for unknown recurrence")
	}
	if _, err := scheduler.Schedule(ctx, Request{Recurrence: RecurrenceNone}); err == nil {
		t.Errorf("Expected error for zero reminder time")
	}
}

func TestLogSchedulerCancel(t *testing.T) {
	var buf bytes.Buffer
	scheduler := LogScheduler{Out: &buf}

	if err := scheduler.Cancel(context.Background(), "some-handle"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if !strings.Contains(buf.String(), "some-handle") {
		t.Errorf("Expected log output to mention the cancelled handle, got: %s", buf.String())
	}
}
