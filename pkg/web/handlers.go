package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/ajvoice/go-aj/pkg/hub"
	"github.com/ajvoice/go-aj/pkg/tools"
)

// ToolInfo describes one catalog entry for the dashboard.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// handleStatus returns the current assistant state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleListTools returns the tool catalog in registration order.
func (s *Server) handleListTools(c *fiber.Ctx) error {
	specs := s.registry.Specs()
	infos := make([]ToolInfo, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, ToolInfo{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  spec.Parameters,
		})
	}
	return c.JSON(infos)
}

// TriggerToolRequest is the request body for triggering a tool.
type TriggerToolRequest struct {
	Args map[string]any `json:"args"`
}

// handleTriggerTool dispatches a tool manually through the same path
// the voice session uses. Dispatch is total, so this always answers
// with a result string.
func (s *Server) handleTriggerTool(c *fiber.Ctx) error {
	name := c.Params("name")

	var req TriggerToolRequest
	if err := c.BodyParser(&req); err != nil {
		req.Args = make(map[string]any)
	}

	call := tools.ToolCall{
		ID:        uuid.NewString(),
		Name:      name,
		Arguments: req.Args,
	}

	s.stateMu.RLock()
	sessionID := s.state.SessionID
	s.stateMu.RUnlock()

	ctx := c.UserContext()
	if sessionID != "" {
		ctx = tools.WithSession(ctx, tools.Session{ID: sessionID})
	}

	result := s.registry.Dispatch(ctx, call)

	s.stateMu.Lock()
	s.state.ToolCalls++
	s.stateMu.Unlock()

	s.AddLog("tool", "Manual: "+name+" → "+result.Result)
	s.broadcast("tool_call", fiber.Map{
		"tool":       name,
		"result":     result.Result,
		"elapsed_ms": result.Elapsed.Milliseconds(),
	})

	return c.JSON(fiber.Map{
		"tool":       name,
		"result":     result.Result,
		"elapsed_ms": result.Elapsed.Milliseconds(),
	})
}

// handleGetTranscript returns the recent conversation.
func (s *Server) handleGetTranscript(c *fiber.Ctx) error {
	s.transcriptMu.RLock()
	defer s.transcriptMu.RUnlock()
	return c.JSON(s.transcript)
}

// handleGetLogs returns recent log entries.
func (s *Server) handleGetLogs(c *fiber.Ctx) error {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	return c.JSON(s.logs)
}

// handleEventsWS streams live events to a websocket client.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	client := hub.NewClient(s.events, c)

	// Send current state so the client does not start blank
	s.stateMu.RLock()
	state := s.state
	s.stateMu.RUnlock()
	c.WriteJSON(Event{Type: "status", Data: state})

	client.Run()
}
