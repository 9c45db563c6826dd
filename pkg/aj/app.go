package aj

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ajvoice/go-aj/internal/log"
	"github.com/ajvoice/go-aj/pkg/tools"
	"github.com/ajvoice/go-aj/pkg/voice"
	_ "github.com/ajvoice/go-aj/pkg/voice/bundled" // Register voice providers
	"github.com/ajvoice/go-aj/pkg/web"
)

// App is the main Aj application orchestrator.
// It manages all components and their lifecycle.
type App struct {
	config Config

	session  tools.Session
	registry *tools.Registry
	pipeline voice.Pipeline
	web      *web.Server

	// Base context for tool dispatch; set in Run so an ended session
	// cancels in-flight tool I/O.
	baseCtx context.Context

	// Response assembly for console echo
	respMu          sync.Mutex
	responseStarted bool
	currentResponse string
}

// New creates a new Aj application with the given configuration.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &App{config: cfg}, nil
}

// Init initializes all components.
// Call this after New() and before Run().
func (a *App) Init() error {
	level := "info"
	if a.config.Debug {
		level = "debug"
	}
	log.Init(level)

	fmt.Println("🎩 Aj - Personal Voice Assistant")
	fmt.Println("================================")

	a.session = tools.NewSession()

	registry, err := tools.Catalog(tools.Config{
		GmailUser:        a.config.GmailUser,
		GmailAppPassword: a.config.GmailAppPassword,
		OpenAIKey:        a.config.OpenAIKey,
		SearchRoot:       a.config.SearchRoot,
	})
	if err != nil {
		return fmt.Errorf("tool catalog: %w", err)
	}
	a.registry = registry
	fmt.Printf("🔧 Tool catalog ready (%d tools)\n", registry.Len())

	pipeline, err := voice.New(a.config.toVoiceConfig())
	if err != nil {
		return fmt.Errorf("voice pipeline: %w", err)
	}
	a.pipeline = pipeline

	// Declare the catalog to the model; invocation flows back through
	// OnToolCall and the registry, not the per-tool handlers.
	for _, spec := range registry.Specs() {
		a.pipeline.RegisterTool(voice.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  spec.Parameters,
		})
	}

	a.wireCallbacks()

	a.web = web.NewServer(a.config.WebPort, registry)
	a.web.UpdateState(func(s *web.State) {
		s.SessionID = a.session.ID
		s.Provider = a.config.Provider
	})

	return nil
}

// Run starts the session and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.baseCtx = ctx

	a.web.StartAsync()

	fmt.Print("🧠 Connecting to voice pipeline... ")
	if err := a.pipeline.Start(ctx); err != nil {
		fmt.Println("❌")
		return fmt.Errorf("voice pipeline: %w", err)
	}
	fmt.Println("✅")

	// Wait for pipeline ready
	for i := 0; i < 50; i++ {
		if a.pipeline.IsConnected() {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	a.web.UpdateState(func(s *web.State) {
		s.PipelineConnected = a.pipeline.IsConnected()
		s.Listening = true
	})
	a.web.AddLog("info", "session started")

	// Greeting kick-off
	if err := a.pipeline.SendText(SessionInstruction); err != nil {
		log.Warn("greeting failed", "error", err)
	}

	fmt.Println("\n🎤 Aj is listening! Speak to start a conversation...")
	fmt.Println("   (Ctrl+C to exit)")

	<-ctx.Done()
	return nil
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown() {
	fmt.Println("\n👋 Goodbye!")

	if a.pipeline != nil {
		a.pipeline.Stop()
	}
	if a.web != nil {
		a.web.Shutdown()
	}
}

// wireCallbacks connects pipeline events to dispatch, console echo,
// and the dashboard.
func (a *App) wireCallbacks() {
	a.pipeline.OnToolCall(func(call voice.ToolCall) {
		// Dispatch off the read loop; tool I/O can take seconds
		go a.dispatchToolCall(call)
	})

	a.pipeline.OnTranscript(func(text string, isFinal bool) {
		if !isFinal || text == "" {
			return
		}
		fmt.Printf("👤 User: %s\n", text)
		a.respMu.Lock()
		a.responseStarted = false
		a.respMu.Unlock()
		if a.web != nil {
			a.web.UpdateState(func(s *web.State) {
				s.LastUserMessage = text
				s.Listening = true
				s.Speaking = false
			})
			a.web.AddTranscript("user", text)
		}
	})

	a.pipeline.OnResponse(func(text string, isFinal bool) {
		a.respMu.Lock()
		defer a.respMu.Unlock()

		if !isFinal && text != "" {
			if !a.responseStarted {
				fmt.Print("🎩 Aj: ")
				a.responseStarted = true
				a.currentResponse = ""
			}
			fmt.Print(text)
			a.currentResponse += text
			return
		}

		if isFinal {
			if a.responseStarted {
				fmt.Println()
				a.responseStarted = false
			}
			if text != "" {
				a.currentResponse = text
			}
			if a.web != nil && a.currentResponse != "" {
				reply := a.currentResponse
				a.web.UpdateState(func(s *web.State) {
					s.Speaking = true
					s.Listening = false
					s.LastReply = reply
				})
				a.web.AddTranscript("assistant", reply)
			}
			a.currentResponse = ""
		}
	})

	a.pipeline.OnError(func(err error) {
		log.Error("voice pipeline error", "error", err)
		if a.web != nil {
			a.web.AddLog("error", err.Error())
		}
	})
}

// dispatchToolCall runs one model-initiated tool call through the
// registry and submits the resulting text back to the session.
func (a *App) dispatchToolCall(call voice.ToolCall) {
	ctx := a.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = tools.WithSession(ctx, a.session)

	result := a.registry.Dispatch(ctx, tools.ToolCall{
		ID:        call.ID,
		Name:      call.Name,
		Arguments: call.Arguments,
	})

	if err := a.pipeline.SubmitToolResult(call.ID, result.Result); err != nil {
		log.Error("failed to submit tool result", "tool", call.Name, "error", err)
	}

	if a.web != nil {
		a.web.UpdateState(func(s *web.State) {
			s.ToolCalls++
		})
		a.web.AddLog("tool", fmt.Sprintf("%s (%dms)", call.Name, result.Elapsed.Milliseconds()))
		a.web.AddTranscript("tool", call.Name+" → "+result.Result)
	}
}
