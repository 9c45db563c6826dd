// Package web provides a real-time dashboard for the assistant: status,
// the tool catalog, manual tool triggering, and live event streaming
// over websockets.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/ajvoice/go-aj/internal/log"
	"github.com/ajvoice/go-aj/pkg/hub"
	"github.com/ajvoice/go-aj/pkg/tools"
)

// State is the assistant snapshot shown on the dashboard.
type State struct {
	SessionID         string `json:"session_id"`
	Provider          string `json:"provider"`
	PipelineConnected bool   `json:"pipeline_connected"`
	Listening         bool   `json:"listening"`
	Speaking          bool   `json:"speaking"`
	ToolCalls         int    `json:"tool_calls"`
	LastUserMessage   string `json:"last_user_message"`
	LastReply         string `json:"last_reply"`
}

// LogEntry is a log line for the dashboard.
type LogEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, tool, speech, error
	Message string `json:"message"`
}

// TranscriptEntry is one message in the conversation.
type TranscriptEntry struct {
	Time    string `json:"time"`
	Role    string `json:"role"` // user, assistant, tool
	Message string `json:"message"`
}

// Event is the envelope broadcast over /ws/events.
type Event struct {
	Type string `json:"type"` // status, log, transcript, tool_call
	Time string `json:"time"`
	Data any    `json:"data"`
}

// Server is the web dashboard server.
type Server struct {
	app  *fiber.App
	port string

	// Tool catalog, shared with the voice session
	registry *tools.Registry

	// State
	state   State
	stateMu sync.RWMutex

	// Log buffer (last 500 entries)
	logs   []LogEntry
	logsMu sync.RWMutex

	// Transcript buffer (last 200 entries)
	transcript   []TranscriptEntry
	transcriptMu sync.RWMutex

	// Event fan-out to websocket clients
	events *hub.Hub
}

// NewServer creates a new web dashboard server. Manual tool triggers
// run through the same registry dispatch path the voice session uses.
func NewServer(port string, registry *tools.Registry) *Server {
	s := &Server{
		port:       port,
		registry:   registry,
		logs:       make([]LogEntry, 0, 500),
		transcript: make([]TranscriptEntry, 0, 200),
		events:     hub.New("events"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Aj Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/tools", s.handleListTools)
	api.Post("/tools/:name", s.handleTriggerTool)
	api.Get("/transcript", s.handleGetTranscript)
	api.Get("/logs", s.handleGetLogs)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Start starts the web server. Blocks until shutdown.
func (s *Server) Start() error {
	log.Info("web dashboard listening", "url", "http://localhost:"+s.port)

	go s.events.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// UpdateState applies a state mutation and broadcasts the new snapshot.
func (s *Server) UpdateState(update func(*State)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state // Copy for broadcast
	s.stateMu.Unlock()

	s.broadcast("status", state)
}

// AddLog records a log entry and broadcasts it.
func (s *Server) AddLog(logType, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Type:    logType,
		Message: message,
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > 500 {
		s.logs = s.logs[1:]
	}
	s.logsMu.Unlock()

	s.broadcast("log", entry)
}

// AddTranscript records a conversation entry and broadcasts it.
func (s *Server) AddTranscript(role, message string) {
	entry := TranscriptEntry{
		Time:    time.Now().Format("15:04:05"),
		Role:    role,
		Message: message,
	}

	s.transcriptMu.Lock()
	s.transcript = append(s.transcript, entry)
	if len(s.transcript) > 200 {
		s.transcript = s.transcript[1:]
	}
	s.transcriptMu.Unlock()

	s.broadcast("transcript", entry)
}

// EventHub returns the events hub for external use.
func (s *Server) EventHub() *hub.Hub {
	return s.events
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// broadcast wraps data in an Event envelope and fans it out.
func (s *Server) broadcast(eventType string, data any) {
	s.events.BroadcastJSON(Event{
		Type: eventType,
		Time: time.Now().Format("15:04:05"),
		Data: data,
	})
}
