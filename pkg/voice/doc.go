// Package voice provides a unified interface for realtime voice
// conversation pipelines.
//
// The voice package abstracts speech-to-speech providers behind a common
// Pipeline interface, enabling easy switching between providers and
// consistent latency measurement across all implementations.
//
// # Supported Providers
//
// Two bundled providers, each offering different tradeoffs:
//
//   - Gemini Live: Google's native speech-to-speech API (~150-300ms)
//   - OpenAI Realtime: GPT-4o with built-in TTS (~300-500ms)
//
// # Usage
//
// Create a pipeline using one of the bundled providers:
//
//	import (
//	    "github.com/ajvoice/go-aj/pkg/voice"
//	    _ "github.com/ajvoice/go-aj/pkg/voice/bundled"
//	)
//
//	cfg := voice.DefaultConfig()
//	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
//	cfg.SystemPrompt = "You are a helpful assistant."
//
//	pipeline, err := voice.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Declare tools the model can call
//	pipeline.RegisterTool(voice.Tool{
//	    Name:        "get_weather",
//	    Description: "Look up current weather for a city",
//	    Parameters:  schema,
//	})
//
//	// Wire callbacks
//	pipeline.OnToolCall(func(call voice.ToolCall) {
//	    result := dispatch(call)
//	    pipeline.SubmitToolResult(call.ID, result)
//	})
//	pipeline.OnTranscript(func(text string, final bool) {
//	    fmt.Printf("User said: %s\n", text)
//	})
//
//	if err := pipeline.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer pipeline.Stop()
//
// # Latency Metrics
//
// All pipelines track per-turn latency from the moment the user stops
// speaking:
//
//	m := pipeline.Metrics()
//	fmt.Println(m.FormatLatency())
package voice
