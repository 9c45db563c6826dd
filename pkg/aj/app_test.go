package aj

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ajvoice/go-aj/pkg/tools"
	"github.com/ajvoice/go-aj/pkg/voice"
)

// stubPipeline records tool results submitted through the contract.
type stubPipeline struct {
	mu        sync.Mutex
	results   map[string]string
	tools     []voice.Tool
	callbacks voice.Callbacks
}

func newStubPipeline() *stubPipeline {
	return &stubPipeline{results: make(map[string]string)}
}

func (p *stubPipeline) Start(ctx context.Context) error { return nil }
func (p *stubPipeline) Stop() error                     { return nil }
func (p *stubPipeline) IsConnected() bool               { return true }
func (p *stubPipeline) SendAudio(pcm16 []byte) error    { return nil }
func (p *stubPipeline) SendText(text string) error      { return nil }

func (p *stubPipeline) OnAudioOut(fn func(pcm16 []byte))              { p.callbacks.OnAudioOut = fn }
func (p *stubPipeline) OnSpeechStart(fn func())                       { p.callbacks.OnSpeechStart = fn }
func (p *stubPipeline) OnSpeechEnd(fn func())                         { p.callbacks.OnSpeechEnd = fn }
func (p *stubPipeline) OnTranscript(fn func(text string, final bool)) { p.callbacks.OnTranscript = fn }
func (p *stubPipeline) OnResponse(fn func(text string, final bool))   { p.callbacks.OnResponse = fn }
func (p *stubPipeline) OnError(fn func(err error))                    { p.callbacks.OnError = fn }
func (p *stubPipeline) OnToolCall(fn func(call voice.ToolCall))       { p.callbacks.OnToolCall = fn }

func (p *stubPipeline) RegisterTool(tool voice.Tool) {
	p.tools = append(p.tools, tool)
}

func (p *stubPipeline) SubmitToolResult(callID string, result string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[callID] = result
	return nil
}

func (p *stubPipeline) Interrupt() error       { return nil }
func (p *stubPipeline) Metrics() voice.Metrics { return voice.Metrics{} }
func (p *stubPipeline) Config() voice.Config   { return voice.Config{} }

func (p *stubPipeline) result(callID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results[callID]
}

var _ voice.Pipeline = (*stubPipeline)(nil)

// newTestApp wires an App around a stub pipeline and a real catalog
// with no credentials configured.
func newTestApp(t *testing.T) (*App, *stubPipeline) {
	t.Helper()

	registry, err := tools.Catalog(tools.Config{})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	stub := newStubPipeline()
	app := &App{
		config:   DefaultConfig(),
		session:  tools.NewSession(),
		registry: registry,
		pipeline: stub,
	}
	return app, stub
}

func TestDispatchToolCallSubmitsResult(t *testing.T) {
	app, stub := newTestApp(t)

	app.dispatchToolCall(voice.ToolCall{
		ID:   "call-1",
		Name: "parse_git_repo_url",
		Arguments: map[string]any{
			"repo_url": "https://github.com/foo/bar.git",
		},
	})

	result := stub.result("call-1")
	if result == "" {
		t.Fatal("no result submitted for call-1")
	}
	if !strings.Contains(result, "Owner: foo") {
		t.Errorf("unexpected result: %s", result)
	}
}

func TestDispatchUnknownToolStillSubmitsText(t *testing.T) {
	app, stub := newTestApp(t)

	app.dispatchToolCall(voice.ToolCall{ID: "call-2", Name: "warp_drive"})

	result := stub.result("call-2")
	if result == "" {
		t.Fatal("no result submitted for unknown tool")
	}
	if !strings.Contains(result, "unknown tool") {
		t.Errorf("expected unknown tool text, got: %s", result)
	}
}

func TestDispatchFailFastToolWithoutCredentials(t *testing.T) {
	app, stub := newTestApp(t)

	// No Gmail credentials configured; the tool must fail before any
	// network attempt and still answer with text.
	app.dispatchToolCall(voice.ToolCall{
		ID:   "call-3",
		Name: "send_email",
		Arguments: map[string]any{
			"to_email": "boss@example.com",
			"subject":  "Status",
			"message":  "All systems nominal.",
		},
	})

	result := stub.result("call-3")
	if !strings.Contains(result, "credentials not configured") {
		t.Errorf("expected configuration failure text, got: %s", result)
	}
}

func TestInstructionsSteerCodingQuestions(t *testing.T) {
	if !strings.Contains(AgentInstruction, "ask_openai_coding") {
		t.Error("agent instruction should steer coding questions to the proxy tool")
	}
	if !strings.Contains(SessionInstruction, "Hi my name is Aj") {
		t.Error("session instruction should carry the fixed greeting line")
	}
}
