package tools

import (
	"context"
	"strings"
	"testing"
)

func TestGeneratePasswordBounds(t *testing.T) {
	tool := passwordTool()

	got, err := tool.Handler(context.Background(), map[string]any{"length": float64(4)})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Password length must be at least 8 characters for security" {
		t.Errorf("short-length message = %q", got)
	}

	got, err = tool.Handler(context.Background(), map[string]any{"length": float64(129)})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Password length must not exceed 128 characters" {
		t.Errorf("long-length message = %q", got)
	}
}

func TestGeneratePasswordClasses(t *testing.T) {
	tool := passwordTool()

	for i := 0; i < 20; i++ {
		got, err := tool.Handler(context.Background(), map[string]any{"length": float64(12)})
		if err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		pw, ok := strings.CutPrefix(got, "Generated password: ")
		if !ok {
			t.Fatalf("missing result prefix: %q", got)
		}
		if len(pw) != 12 {
			t.Fatalf("password length = %d, want 12", len(pw))
		}
		if !strings.ContainsAny(pw, lowerChars) {
			t.Errorf("password %q has no lowercase", pw)
		}
		if !strings.ContainsAny(pw, upperChars) {
			t.Errorf("password %q has no uppercase", pw)
		}
		if !strings.ContainsAny(pw, digitChars) {
			t.Errorf("password %q has no digit", pw)
		}
		if !strings.ContainsAny(pw, specialChars) {
			t.Errorf("password %q has no special character", pw)
		}
	}
}

func TestGeneratePasswordWithoutSpecials(t *testing.T) {
	tool := passwordTool()

	for i := 0; i < 20; i++ {
		got, err := tool.Handler(context.Background(), map[string]any{
			"length":                float64(8),
			"include_special_chars": false,
		})
		if err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		pw, ok := strings.CutPrefix(got, "Generated password: ")
		if !ok {
			t.Fatalf("missing result prefix: %q", got)
		}
		if len(pw) != 8 {
			t.Fatalf("password length = %d, want 8", len(pw))
		}
		if strings.ContainsAny(pw, specialChars) {
			t.Errorf("special characters present when disabled: %q", pw)
		}
		if !strings.ContainsAny(pw, lowerChars) || !strings.ContainsAny(pw, upperChars) || !strings.ContainsAny(pw, digitChars) {
			t.Errorf("missing a required class: %q", pw)
		}
	}
}

func TestGeneratePasswordDefaultLength(t *testing.T) {
	tool := passwordTool()
	got, err := tool.Handler(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	pw, ok := strings.CutPrefix(got, "Generated password: ")
	if !ok {
		t.Fatalf("missing result prefix: %q", got)
	}
	if len(pw) != 16 {
		t.Errorf("default password length = %d, want 16", len(pw))
	}
}
