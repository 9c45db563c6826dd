package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/ajvoice/go-aj/internal/log"
)

// reminderTool computes and announces a reminder time. Nothing is
// scheduled; no work survives the call.
func reminderTool(cfg Config) Tool {
	return Tool{
		Name:        "set_reminder",
		Description: "Create a simple reminder for a task.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"task": map[string]any{
					"type":        "string",
					"description": "The task to be reminded about",
				},
				"time_minutes": map[string]any{
					"type":        "integer",
					"description": "Minutes from now to set the reminder (default: 5)",
				},
			},
			"required": []string{"task"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			task := stringArg(args, "task", "")
			minutes := intArg(args, "time_minutes", 5)

			now := cfg.Now()
			at := now.Add(time.Duration(minutes) * time.Minute).Format("15:04:05")
			log.Info("reminder set", "task", task, "time", at, "created_at", now.Format("15:04:05"))
			return fmt.Sprintf("Reminder set for '%s' at %s (%d minutes from now)", task, at, minutes), nil
		},
	}
}
