package tools

import (
	"context"
	"fmt"
	"net/http"
)

// Catalog builds the full tool registry for the assistant. The catalog
// is closed and known at compile time; this is the only place tools are
// registered.
func Catalog(cfg Config) (*Registry, error) {
	cfg = cfg.withDefaults()

	reg := NewRegistry()
	all := []Tool{
		// Everyday tools
		weatherTool(cfg),
		webSearchTool(cfg),
		emailTool(cfg),
		emailWithAttachmentTool(cfg),
		fileSearchTool(cfg),
		timeTool(cfg),
		reminderTool(cfg),
		currencyTool(cfg),
		passwordTool(),
		jokeTool(),
		qrCodeTool(),

		// Developer tools
		codingAnswerTool(cfg),
		stackOverflowTool(cfg),
		gitRepoURLTool(),
		codeSnippetTool(),

		// Business tools
		stockPriceTool(cfg),
		newsTool(cfg),
		agendaTool(),
		roiTool(),
	}
	for _, t := range all {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Argument extraction. The model runtime hands arguments over as
// decoded JSON, so numbers arrive as float64.

func stringArg(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}

func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func floatArg(args map[string]any, key string, def float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func boolArg(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

// get issues a context-scoped GET through the catalog's client so an
// abandoned session cancels the request.
func get(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// formatSize renders a byte count the way the catalog reports file
// sizes everywhere: B under a KiB, then KB, then MB.
func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	}
}
