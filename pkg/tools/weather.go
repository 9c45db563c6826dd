package tools

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/ajvoice/go-aj/internal/log"
)

// weatherTool reports current conditions for a city using wttr.in's
// one-line format.
func weatherTool(cfg Config) Tool {
	return Tool{
		Name:        "get_weather",
		Description: "Get the current weather for a given city.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{
					"type":        "string",
					"description": "City to get the weather for (e.g., \"London\", \"New York\")",
				},
			},
			"required": []string{"city"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			city := strings.TrimSpace(stringArg(args, "city", ""))
			if city == "" {
				return "Could not retrieve weather: no city was provided.", nil
			}

			endpoint := fmt.Sprintf("%s/%s?format=3",
				strings.TrimRight(cfg.WeatherBaseURL, "/"), url.PathEscape(city))
			resp, err := get(ctx, cfg.HTTPClient, endpoint)
			if err != nil {
				log.Error("weather lookup failed", "city", city, "error", err)
				return fmt.Sprintf("An error occurred while retrieving weather for %s.", city), nil
			}
			defer resp.Body.Close()

			if resp.StatusCode != 200 {
				log.Error("weather lookup failed", "city", city, "status", resp.StatusCode)
				return fmt.Sprintf("Could not retrieve weather for %s.", city), nil
			}

			body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
			if err != nil {
				return fmt.Sprintf("An error occurred while retrieving weather for %s.", city), nil
			}
			report := strings.TrimSpace(string(body))
			if report == "" {
				return fmt.Sprintf("Could not retrieve weather for %s.", city), nil
			}

			log.Debug("weather retrieved", "city", city, "report", report)
			return report, nil
		},
	}
}
