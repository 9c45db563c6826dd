package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ajvoice/go-aj/internal/log"
)

// DefaultDispatchTimeout bounds a single tool call. The session stalls
// while a call is in flight, so a hung handler is treated as a defect
// and cut off here.
const DefaultDispatchTimeout = 60 * time.Second

// Registry is the static catalog of tools the assistant exposes to the
// model runtime. It is built once at startup and read-only afterwards:
// there is no deregistration and no runtime mutation of descriptors.
// Lookups are case-insensitive; Specs and Names preserve registration
// order.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Tool
	order   []string
	timeout time.Duration
}

// NewRegistry creates an empty registry with the default dispatch timeout.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Tool),
		timeout: DefaultDispatchTimeout,
	}
}

// SetDispatchTimeout overrides the per-call timeout. Zero disables it.
func (r *Registry) SetDispatchTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeout = d
}

// Register adds a tool to the catalog. Tool names must be unique and
// non-empty; a handler is required.
func (r *Registry) Register(t Tool) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tools: register: empty tool name")
	}
	if t.Handler == nil {
		return fmt.Errorf("tools: register %q: nil handler", t.Name)
	}

	key := strings.ToLower(t.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("tools: register %q: duplicate tool name", t.Name)
	}
	r.byName[key] = t
	r.order = append(r.order, key)
	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[strings.ToLower(name)]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.byName[key].Name)
	}
	return names
}

// Specs returns the tool descriptors in registration order, without
// handlers. This is the catalog handed to the model runtime at session
// setup.
func (r *Registry) Specs() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]Tool, 0, len(r.order))
	for _, key := range r.order {
		t := r.byName[key]
		specs = append(specs, Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return specs
}

// Dispatch runs one tool call and always produces text: unknown names,
// handler errors, panics, and timeouts all come back as a ToolResult
// whose Result describes the failure. Nothing propagates to the caller
// as anything other than a string.
func (r *Registry) Dispatch(ctx context.Context, call ToolCall) ToolResult {
	start := time.Now()

	tool, ok := r.Get(call.Name)
	if !ok {
		log.Warn("tool call for unknown tool", "tool", call.Name, "call_id", call.ID)
		return ToolResult{
			CallID:  call.ID,
			Result:  fmt.Sprintf("Error: unknown tool '%s'", call.Name),
			Elapsed: time.Since(start),
		}
	}

	r.mu.RLock()
	timeout := r.timeout
	r.mu.RUnlock()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result := r.invoke(ctx, tool, call.Arguments)
	elapsed := time.Since(start)

	sessionID := ""
	if s, ok := SessionFromContext(ctx); ok {
		sessionID = s.ID
	}
	log.Info("tool dispatched",
		"tool", tool.Name,
		"call_id", call.ID,
		"session", sessionID,
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)

	return ToolResult{CallID: call.ID, Result: result, Elapsed: elapsed}
}

// invoke runs the handler with a panic guard. A panicking tool must not
// take the session down with it.
func (r *Registry) invoke(ctx context.Context, tool Tool, args map[string]any) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("tool panicked", "tool", tool.Name, "panic", fmt.Sprint(rec))
			result = fmt.Sprintf("An error occurred while running %s.", tool.Name)
		}
	}()

	if args == nil {
		args = map[string]any{}
	}

	out, err := tool.Handler(ctx, args)
	if err != nil {
		log.Error("tool failed", "tool", tool.Name, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}
	return out
}
