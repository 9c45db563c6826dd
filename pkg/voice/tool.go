package voice

// Tool declares a function the conversational model may invoke during a
// session. Providers send the declaration at session setup; invocation
// flows through OnToolCall so the application can run the call through
// its own dispatcher and answer with SubmitToolResult.
type Tool struct {
	// Name is the unique identifier the model calls the tool by.
	Name string `json:"name"`

	// Description tells the model what the tool does and when to use it.
	Description string `json:"description"`

	// Parameters is the JSON-schema object describing the arguments:
	// {"type": "object", "properties": {...}, "required": [...]}.
	Parameters map[string]any `json:"parameters"`

	// Handler is an optional direct executor. It is only consulted when
	// no OnToolCall callback is installed; applications that dispatch
	// through a registry leave it nil.
	Handler func(args map[string]any) (string, error) `json:"-"`
}

// ToolCall is one invocation request from the model.
type ToolCall struct {
	// ID correlates the call with the result submitted for it.
	ID string

	// Name is the tool being invoked.
	Name string

	// Arguments holds the parsed arguments from the model.
	Arguments map[string]any
}
