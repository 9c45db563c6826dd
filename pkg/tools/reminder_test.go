package tools

import (
	"context"
	"testing"
	"time"
)

func TestSetReminder(t *testing.T) {
	cfg := Config{Now: func() time.Time {
		return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	}}
	tool := reminderTool(cfg)

	got, err := tool.Handler(context.Background(), map[string]any{"task": "make tea"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Reminder set for 'make tea' at 10:05:00 (5 minutes from now)" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestSetReminderCustomMinutes(t *testing.T) {
	cfg := Config{Now: func() time.Time {
		return time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	}}
	tool := reminderTool(cfg)

	got, err := tool.Handler(context.Background(), map[string]any{
		"task":         "join standup",
		"time_minutes": float64(90),
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Reminder set for 'join standup' at 01:00:00 (90 minutes from now)" {
		t.Errorf("unexpected result: %q", got)
	}
}
