package tools

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	return func() time.Time { return at }
}

func TestGetTimeExactZone(t *testing.T) {
	tool := timeTool(Config{Now: fixedClock()})
	got, err := tool.Handler(context.Background(), map[string]any{"timezone": "America/New_York"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	// 15:09 UTC is 11:09 EDT on 2025-03-14.
	want := "Current time in America/New_York: 2025-03-14 11:09:26 EDT"
	if got != want {
		t.Errorf("result = %q, want %q", got, want)
	}
}

func TestGetTimeDefaultUTC(t *testing.T) {
	tool := timeTool(Config{Now: fixedClock()})
	got, err := tool.Handler(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Current time in UTC: 2025-03-14 15:09:26 UTC" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestGetTimeFuzzyMatch(t *testing.T) {
	tool := timeTool(Config{Now: fixedClock()})
	got, err := tool.Handler(context.Background(), map[string]any{"timezone": "kolkata"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if !strings.HasPrefix(got, "Current time in Asia/Kolkata: ") {
		t.Errorf("fuzzy match failed: %q", got)
	}
	if !strings.HasSuffix(got, "(Note: Using closest match: Asia/Kolkata)") {
		t.Errorf("missing fuzzy note: %q", got)
	}
}

func TestGetTimeInvalidZone(t *testing.T) {
	tool := timeTool(Config{Now: fixedClock()})
	got, err := tool.Handler(context.Background(), map[string]any{"timezone": "xyzzy"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	want := "Current time in UTC: 2025-03-14 15:09:26 UTC (Note: Invalid timezone. Using UTC instead.)"
	if got != want {
		t.Errorf("result = %q, want %q", got, want)
	}
}

func TestResolveTimezoneDeterministic(t *testing.T) {
	if !sort.StringsAreSorted(timezones) {
		t.Fatal("timezone list must stay sorted so fuzzy matches are deterministic")
	}

	// "an" appears in many zones; the sorted list pins the winner.
	zone, note := resolveTimezone("an")
	if zone != "Africa/Casablanca" {
		t.Errorf("first substring match = %q, want Africa/Casablanca", zone)
	}
	if note != "Using closest match: Africa/Casablanca" {
		t.Errorf("unexpected note: %q", note)
	}
}

func TestResolveTimezoneExactPassThrough(t *testing.T) {
	zone, note := resolveTimezone("Europe/Paris")
	if zone != "Europe/Paris" || note != "" {
		t.Errorf("exact zone rewritten: zone=%q note=%q", zone, note)
	}
}

func TestTimezoneListLoads(t *testing.T) {
	for _, name := range timezones {
		if _, err := time.LoadLocation(name); err != nil {
			t.Errorf("zone %q does not load: %v", name, err)
		}
	}
}
