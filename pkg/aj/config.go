// Package aj wires the tool catalog, the realtime voice pipeline, and
// the web dashboard into the Aj personal assistant.
package aj

import (
	"fmt"
	"os"

	"github.com/ajvoice/go-aj/pkg/voice"
)

// Default configuration values.
const (
	DefaultProvider = "gemini"
	DefaultVoice    = "Aoede"
	DefaultWebPort  = "8181"
)

// Config holds all configuration for the Aj application.
// Flag parsing is done in cmd/aj/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// Provider selects the realtime pipeline: "gemini" or "openai".
	Provider string

	// Voice is the TTS voice name for the selected provider.
	Voice string

	// WebPort is the dashboard listen port.
	WebPort string

	// SearchRoot overrides the default root for the file search tool.
	SearchRoot string

	// API keys (typically from environment variables).
	GoogleAPIKey string
	OpenAIKey    string

	// Gmail credentials for the email tools.
	GmailUser        string
	GmailAppPassword string
}

// DefaultConfig returns sensible defaults for Aj.
func DefaultConfig() Config {
	return Config{
		Provider: DefaultProvider,
		Voice:    DefaultVoice,
		WebPort:  DefaultWebPort,
	}
}

// LoadEnvConfig loads configuration values from environment variables.
// Call this after flag parsing to apply environment overrides.
func (c *Config) LoadEnvConfig() {
	c.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.GmailUser = os.Getenv("GMAIL_USER")
	c.GmailAppPassword = os.Getenv("GMAIL_APP_PASSWORD")

	if p := os.Getenv("AJ_PROVIDER"); p != "" {
		c.Provider = p
	}
	if v := os.Getenv("AJ_VOICE"); v != "" {
		c.Voice = v
	}
	if port := os.Getenv("AJ_WEB_PORT"); port != "" {
		c.WebPort = port
	}
	if root := os.Getenv("AJ_SEARCH_ROOT"); root != "" {
		c.SearchRoot = root
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.GoogleAPIKey == "" {
			return &ConfigError{Field: "GoogleAPIKey", Message: "GOOGLE_API_KEY environment variable is required for the Gemini provider"}
		}
	case "openai":
		if c.OpenAIKey == "" {
			return &ConfigError{Field: "OpenAIKey", Message: "OPENAI_API_KEY environment variable is required for the OpenAI provider"}
		}
	default:
		return &ConfigError{Field: "Provider", Message: fmt.Sprintf("unknown provider %q (expected gemini or openai)", c.Provider)}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// toVoiceConfig maps the application configuration onto the voice
// pipeline configuration.
func (c Config) toVoiceConfig() voice.Config {
	var vcfg voice.Config
	switch c.Provider {
	case "openai":
		vcfg = voice.DefaultOpenAIConfig()
	default:
		vcfg = voice.DefaultConfig()
	}

	vcfg.GoogleAPIKey = c.GoogleAPIKey
	vcfg.OpenAIKey = c.OpenAIKey
	if c.Voice != "" {
		vcfg.Voice = c.Voice
	}
	vcfg.SystemPrompt = AgentInstruction
	vcfg.Debug = c.Debug
	vcfg.ProfileLatency = c.Debug
	return vcfg
}
