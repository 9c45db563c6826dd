package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func testTool(name string, handler func(ctx context.Context, args map[string]any) (string, error)) Tool {
	return Tool{
		Name:        name,
		Description: "test tool",
		Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		Handler:     handler,
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()

	ok := testTool("echo", func(ctx context.Context, args map[string]any) (string, error) {
		return "ok", nil
	})
	if err := reg.Register(ok); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("expected 1 registered tool, got %d", reg.Len())
	}

	if err := reg.Register(ok); err == nil {
		t.Error("expected error registering duplicate name")
	}
	if err := reg.Register(testTool("ECHO", ok.Handler)); err == nil {
		t.Error("expected duplicate error for case-insensitive name collision")
	}
	if err := reg.Register(testTool("", ok.Handler)); err == nil {
		t.Error("expected error registering empty name")
	}
	if err := reg.Register(Tool{Name: "broken"}); err == nil {
		t.Error("expected error registering nil handler")
	}
	if reg.Len() != 1 {
		t.Errorf("failed registrations must not grow the catalog, got %d", reg.Len())
	}
}

func TestRegistryGetCaseInsensitive(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testTool("Get_Weather", func(ctx context.Context, args map[string]any) (string, error) {
		return "sunny", nil
	})); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	for _, name := range []string{"get_weather", "GET_WEATHER", "Get_Weather"} {
		if _, ok := reg.Get(name); !ok {
			t.Errorf("Get(%q) did not find the tool", name)
		}
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get() found a tool that was never registered")
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()
	names := []string{"alpha", "bravo", "charlie"}
	for _, name := range names {
		if err := reg.Register(testTool(name, func(ctx context.Context, args map[string]any) (string, error) {
			return "", nil
		})); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	got := reg.Names()
	if len(got) != len(names) {
		t.Fatalf("expected %d names, got %d", len(names), len(got))
	}
	for i, name := range names {
		if got[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], name)
		}
	}

	specs := reg.Specs()
	for i, spec := range specs {
		if spec.Name != names[i] {
			t.Errorf("Specs()[%d].Name = %q, want %q", i, spec.Name, names[i])
		}
		if spec.Handler != nil {
			t.Errorf("Specs()[%d] leaked a handler", i)
		}
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	reg := NewRegistry()
	res := reg.Dispatch(context.Background(), ToolCall{ID: "c1", Name: "nope"})

	if res.CallID != "c1" {
		t.Errorf("expected call id c1, got %q", res.CallID)
	}
	if res.Result != "Error: unknown tool 'nope'" {
		t.Errorf("unexpected result for unknown tool: %q", res.Result)
	}
}

func TestDispatchHandlerError(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testTool("boom", func(ctx context.Context, args map[string]any) (string, error) {
		return "", errors.New("wires crossed")
	})); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	res := reg.Dispatch(context.Background(), ToolCall{ID: "c2", Name: "boom"})
	if res.Result != "Error: wires crossed" {
		t.Errorf("expected formatted handler error, got %q", res.Result)
	}
}

func TestDispatchPanicRecovery(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testTool("panicky", func(ctx context.Context, args map[string]any) (string, error) {
		panic("lost it")
	})); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	res := reg.Dispatch(context.Background(), ToolCall{ID: "c3", Name: "panicky"})
	if res.Result != "An error occurred while running panicky." {
		t.Errorf("expected panic fallback message, got %q", res.Result)
	}
}

func TestDispatchNilArguments(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testTool("probe", func(ctx context.Context, args map[string]any) (string, error) {
		if args == nil {
			t.Error("handler received nil args")
		}
		return "fine", nil
	})); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	res := reg.Dispatch(context.Background(), ToolCall{ID: "c4", Name: "probe"})
	if res.Result != "fine" {
		t.Errorf("expected handler result, got %q", res.Result)
	}
}

func TestDispatchTimeout(t *testing.T) {
	reg := NewRegistry()
	reg.SetDispatchTimeout(20 * time.Millisecond)
	if err := reg.Register(testTool("slow", func(ctx context.Context, args map[string]any) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	})); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	start := time.Now()
	res := reg.Dispatch(context.Background(), ToolCall{ID: "c5", Name: "slow"})
	if time.Since(start) > time.Second {
		t.Fatal("dispatch did not honor the timeout")
	}
	if !strings.Contains(res.Result, "Error:") || !strings.Contains(res.Result, "deadline") {
		t.Errorf("expected deadline error result, got %q", res.Result)
	}
}

func TestSessionContext(t *testing.T) {
	sess := NewSession()
	if sess.ID == "" {
		t.Fatal("NewSession() produced an empty id")
	}

	ctx := WithSession(context.Background(), sess)
	got, ok := SessionFromContext(ctx)
	if !ok {
		t.Fatal("SessionFromContext() did not find the session")
	}
	if got.ID != sess.ID {
		t.Errorf("session id = %q, want %q", got.ID, sess.ID)
	}

	if _, ok := SessionFromContext(context.Background()); ok {
		t.Error("SessionFromContext() found a session on a bare context")
	}
}
