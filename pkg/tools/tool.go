package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tool is a single named capability the assistant can invoke during a
// conversation: look up weather, send an email, generate a password.
type Tool struct {
	// Name is the unique, stable identifier for the tool (e.g., "get_weather").
	Name string `json:"name"`

	// Description explains what the tool does, helping the model decide when to use it.
	Description string `json:"description"`

	// Parameters defines the JSON schema for the tool's arguments.
	// Example:
	//   map[string]any{
	//       "type": "object",
	//       "properties": map[string]any{
	//           "city": map[string]any{
	//               "type":        "string",
	//               "description": "City to look up",
	//           },
	//       },
	//       "required": []string{"city"},
	//   }
	Parameters map[string]any `json:"parameters"`

	// Handler is called when the model invokes this tool.
	// Operational failures (bad input, unreachable service, missing
	// credentials) come back as a descriptive result string with a nil
	// error; a non-nil error is reserved for faults the handler could
	// not phrase itself and is formatted to text at the dispatch
	// boundary. Either way the caller always ends up with a string.
	Handler func(ctx context.Context, args map[string]any) (string, error) `json:"-"`
}

// ToolCall is an invocation request, usually produced by the model runtime.
type ToolCall struct {
	// ID identifies this call so the result can be matched back to it.
	ID string

	// Name is the tool being invoked.
	Name string

	// Arguments contains the parsed arguments from the model.
	Arguments map[string]any
}

// ToolResult is the outcome of a dispatched call. Result always holds
// user-facing text, on failure paths included.
type ToolResult struct {
	// CallID matches the ToolCall.ID this result corresponds to.
	CallID string

	// Result is the string to hand back to the model.
	Result string

	// Elapsed is how long the handler ran.
	Elapsed time.Duration
}

// Session identifies the conversation a tool call belongs to. Tools may
// read it from the context; they never own or mutate it.
type Session struct {
	ID        string
	StartedAt time.Time
}

// NewSession starts a session record with a fresh id.
func NewSession() Session {
	return Session{ID: uuid.NewString(), StartedAt: time.Now()}
}

type sessionKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session carried by ctx, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
