package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Common errors returned by pipelines.
var (
	ErrNotConnected    = errors.New("voice: pipeline not connected")
	ErrAlreadyStarted  = errors.New("voice: pipeline already started")
	ErrMissingAPIKey   = errors.New("voice: missing API key")
	ErrUnknownProvider = errors.New("voice: unknown provider")
)

// Pipeline is the interface for a realtime speech-to-speech session.
// A pipeline owns one websocket to a conversational model: audio and
// tool declarations go up, audio, transcripts, and tool calls come
// back down through the callbacks.
type Pipeline interface {
	// Lifecycle

	// Start establishes the connection and begins processing.
	// Call this after registering tools and setting up callbacks.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the pipeline.
	Stop() error

	// IsConnected returns true if the pipeline is connected and ready.
	IsConnected() bool

	// Input

	// SendAudio sends PCM16 audio data to the pipeline.
	SendAudio(pcm16 []byte) error

	// SendText injects a text turn into the conversation, as if the
	// user had typed it. Used for the session greeting kick-off.
	SendText(text string) error

	// Events

	// OnAudioOut sets the callback for receiving audio output.
	OnAudioOut(fn func(pcm16 []byte))

	// OnSpeechStart is called when the user starts speaking.
	OnSpeechStart(fn func())

	// OnSpeechEnd is called when the user stops speaking.
	OnSpeechEnd(fn func())

	// OnTranscript is called with the user's transcribed speech.
	// isFinal indicates whether this is the final transcript.
	OnTranscript(fn func(text string, isFinal bool))

	// OnResponse is called with the model's text response.
	// isFinal indicates whether this is the final response.
	OnResponse(fn func(text string, isFinal bool))

	// OnError is called when an error occurs.
	OnError(fn func(err error))

	// Tools

	// RegisterTool declares a tool the model can invoke.
	// Must be called before Start().
	RegisterTool(tool Tool)

	// OnToolCall sets the callback for tool invocations. The callback
	// receives the call ID, tool name, and parsed arguments; answer
	// with SubmitToolResult. When no callback is installed the
	// pipeline falls back to the tool's own Handler.
	OnToolCall(fn func(call ToolCall))

	// SubmitToolResult returns a tool call result to the model.
	SubmitToolResult(callID string, result string) error

	// Control

	// Interrupt stops the current model response (for barge-in).
	Interrupt() error

	// Metrics & Config

	// Metrics returns latency metrics for the current turn.
	Metrics() Metrics

	// Config returns the current configuration.
	Config() Config
}

// PipelineFactory is a function that creates a Pipeline.
type PipelineFactory func(cfg Config) (Pipeline, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Provider]PipelineFactory)
)

// Register associates a provider with its pipeline factory.
// Bundled implementations call this from init().
func Register(p Provider, f PipelineFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[p] = f
}

// New creates a Pipeline for the provider named in the configuration.
// Returns an error if the config is invalid or the provider has no
// registered factory.
func New(cfg Config) (Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factoriesMu.RLock()
	f, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	return f(cfg)
}

// Callbacks groups all pipeline callbacks for convenience.
// This can be used to set up all callbacks at once.
type Callbacks struct {
	OnAudioOut    func(pcm16 []byte)
	OnSpeechStart func()
	OnSpeechEnd   func()
	OnTranscript  func(text string, isFinal bool)
	OnResponse    func(text string, isFinal bool)
	OnToolCall    func(call ToolCall)
	OnError       func(err error)
}

// Apply sets all non-nil callbacks on a pipeline.
func (c *Callbacks) Apply(p Pipeline) {
	if c.OnAudioOut != nil {
		p.OnAudioOut(c.OnAudioOut)
	}
	if c.OnSpeechStart != nil {
		p.OnSpeechStart(c.OnSpeechStart)
	}
	if c.OnSpeechEnd != nil {
		p.OnSpeechEnd(c.OnSpeechEnd)
	}
	if c.OnTranscript != nil {
		p.OnTranscript(c.OnTranscript)
	}
	if c.OnResponse != nil {
		p.OnResponse(c.OnResponse)
	}
	if c.OnToolCall != nil {
		p.OnToolCall(c.OnToolCall)
	}
	if c.OnError != nil {
		p.OnError(c.OnError)
	}
}
