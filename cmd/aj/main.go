// Aj - voice-driven personal assistant with a fixed tool catalog.
// Speaks through a realtime speech-to-speech model (Gemini Live or
// OpenAI Realtime) that invokes local tools during the conversation.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ajvoice/go-aj/pkg/aj"
)

func main() {
	cfg := parseFlags()

	app, err := aj.New(cfg)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	if err := app.Init(); err != nil {
		log.Fatalf("❌ Initialization failed: %v", err)
	}
	defer app.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("❌ Runtime error: %v", err)
	}
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() aj.Config {
	// Load .env before flags so flag defaults can be overridden by both
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  .env not loaded: %v", err)
	}

	cfg := aj.DefaultConfig()
	cfg.LoadEnvConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	provider := flag.String("provider", cfg.Provider, "Voice provider: gemini, openai")
	voiceName := flag.String("voice", "", "TTS voice name (provider-specific)")
	webPort := flag.String("web-port", cfg.WebPort, "Dashboard listen port")
	searchRoot := flag.String("search-root", "", "Root directory for the file search tool (default: home)")
	flag.Parse()

	cfg.Debug = *debug
	cfg.Provider = *provider
	if *voiceName != "" {
		cfg.Voice = *voiceName
	}
	cfg.WebPort = *webPort
	if *searchRoot != "" {
		cfg.SearchRoot = *searchRoot
	}

	return cfg
}
