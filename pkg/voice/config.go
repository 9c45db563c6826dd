package voice

import (
	"errors"
	"fmt"
	"time"
)

// Provider identifies the voice pipeline provider.
type Provider string

const (
	// ProviderGemini uses Google's Gemini Live API (lowest latency).
	ProviderGemini Provider = "gemini"

	// ProviderOpenAI uses OpenAI's Realtime API (GPT-4o + built-in TTS).
	ProviderOpenAI Provider = "openai"
)

// Config holds all tunable parameters for voice pipelines.
type Config struct {
	// Provider selection
	Provider Provider

	// API Keys (provider-specific)
	GoogleAPIKey string
	OpenAIKey    string

	// Model is the realtime model name. Empty uses the provider default.
	Model string

	// Voice is the TTS voice name (Gemini: Puck, Charon, Kore, Fenrir,
	// Aoede; OpenAI: alloy, echo, shimmer, ...).
	Voice string

	// Temperature controls response randomness, 0.0-2.0.
	Temperature float64

	// MaxTokens caps response length where the provider supports it.
	MaxTokens int

	// SystemPrompt is the persona and behavior instructions sent at
	// session setup.
	SystemPrompt string

	// Audio settings
	InputSampleRate  int // PCM16 input rate (default: 16000 for Gemini, 24000 for OpenAI)
	OutputSampleRate int // PCM16 output rate (default: 24000)

	// VAD (Voice Activity Detection) settings
	VADThreshold       float64       // Activation threshold 0.0-1.0 (default: 0.5)
	VADPrefixPadding   time.Duration // Audio to include before speech start (default: 300ms)
	VADSilenceDuration time.Duration // Silence duration to detect end of speech (default: 500ms)

	// Debug settings
	Debug          bool // Enable debug logging
	ProfileLatency bool // Log detailed latency breakdown per turn
}

// DefaultConfig returns a Config with defaults for Gemini Live.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,

		Voice:       "Aoede",
		Temperature: 0.8,
		MaxTokens:   4096,

		InputSampleRate:  16000,
		OutputSampleRate: 24000,

		VADThreshold:       0.5,
		VADPrefixPadding:   300 * time.Millisecond,
		VADSilenceDuration: 500 * time.Millisecond,
	}
}

// DefaultOpenAIConfig returns a Config with defaults for OpenAI Realtime.
func DefaultOpenAIConfig() Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.Voice = "alloy"
	cfg.InputSampleRate = 24000
	cfg.OutputSampleRate = 24000
	return cfg
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return errors.New("voice: Google API key required")
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return errors.New("voice: OpenAI API key required")
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProvider, c.Provider)
	}

	if c.VADThreshold < 0 || c.VADThreshold > 1 {
		return errors.New("voice: VAD threshold must be between 0 and 1")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("voice: temperature must be between 0 and 2")
	}

	return nil
}

// WithProvider returns a copy with the provider set.
func (c Config) WithProvider(p Provider) Config {
	c.Provider = p
	return c
}

// WithVoice returns a copy with the TTS voice set.
func (c Config) WithVoice(voice string) Config {
	c.Voice = voice
	return c
}

// WithSystemPrompt returns a copy with the system prompt set.
func (c Config) WithSystemPrompt(prompt string) Config {
	c.SystemPrompt = prompt
	return c
}

// WithVAD returns a copy with VAD settings.
func (c Config) WithVAD(threshold float64, silenceDuration time.Duration) Config {
	c.VADThreshold = threshold
	c.VADSilenceDuration = silenceDuration
	return c
}

// WithDebug returns a copy with debug enabled.
func (c Config) WithDebug(debug bool) Config {
	c.Debug = debug
	return c
}
