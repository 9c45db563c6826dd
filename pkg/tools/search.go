package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ajvoice/go-aj/internal/log"
)

// webSearchTool answers general queries through DuckDuckGo: the instant
// answer API first, organic results scraped from the HTML endpoint when
// the API has nothing direct to say.
func webSearchTool(cfg Config) Tool {
	return Tool{
		Name:        "search_web",
		Description: "Search the web using DuckDuckGo.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for",
				},
			},
			"required": []string{"query"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			query := strings.TrimSpace(stringArg(args, "query", ""))
			if query == "" {
				return "No results found for an empty query.", nil
			}
			return searchWeb(ctx, cfg, query), nil
		},
	}
}

// stackOverflowTool narrows a web search to stackoverflow.com. It calls
// the search path directly, not through the registry.
func stackOverflowTool(cfg Config) Tool {
	return Tool{
		Name:        "search_stackoverflow",
		Description: "Search Stack Overflow for programming questions and answers.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query for programming questions",
				},
			},
			"required": []string{"query"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			query := strings.TrimSpace(stringArg(args, "query", ""))
			if query == "" {
				return "No results found for an empty query.", nil
			}
			results := searchWeb(ctx, cfg, "site:stackoverflow.com "+query)
			return fmt.Sprintf("Stack Overflow results for '%s':\n\n%s", query, results), nil
		},
	}
}

// searchWeb always returns user-facing text, failures included, so
// wrappers can embed the result verbatim.
func searchWeb(ctx context.Context, cfg Config, query string) string {
	if answer, err := instantAnswer(ctx, cfg, query); err != nil {
		log.Error("web search failed", "query", query, "error", err)
		return fmt.Sprintf("An error occurred while searching the web for '%s'.", query)
	} else if answer != "" {
		return answer
	}

	results, err := htmlResults(ctx, cfg, query)
	if err != nil {
		log.Error("web search failed", "query", query, "error", err)
		return fmt.Sprintf("An error occurred while searching the web for '%s'.", query)
	}
	if results == "" {
		return fmt.Sprintf("No results found for '%s'.", query)
	}
	return results
}

// instantAnswer queries the DuckDuckGo instant answer API. An empty
// string with nil error means the API had no direct answer.
func instantAnswer(ctx context.Context, cfg Config, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")

	resp, err := get(ctx, cfg.HTTPClient, cfg.SearchAPIURL+"?"+params.Encode())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("instant answer API returned status %d", resp.StatusCode)
	}

	var payload struct {
		AbstractText  string `json:"AbstractText"`
		AbstractURL   string `json:"AbstractURL"`
		Answer        string `json:"Answer"`
		Definition    string `json:"Definition"`
		DefinitionURL string `json:"DefinitionURL"`
		RelatedTopics []struct {
			Text     string `json:"Text"`
			FirstURL string `json:"FirstURL"`
		} `json:"RelatedTopics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to parse instant answer response: %w", err)
	}

	switch {
	case payload.AbstractText != "":
		if payload.AbstractURL != "" {
			return payload.AbstractText + "\nSource: " + payload.AbstractURL, nil
		}
		return payload.AbstractText, nil
	case payload.Answer != "":
		return payload.Answer, nil
	case payload.Definition != "":
		if payload.DefinitionURL != "" {
			return payload.Definition + "\nSource: " + payload.DefinitionURL, nil
		}
		return payload.Definition, nil
	}

	var topics []string
	for _, t := range payload.RelatedTopics {
		if t.Text == "" {
			continue
		}
		topics = append(topics, t.Text)
		if len(topics) == 3 {
			break
		}
	}
	return strings.Join(topics, "\n"), nil
}

// searchRequest builds a GET with a browser user agent. The HTML
// endpoint refuses the default Go client string.
func searchRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	return req, nil
}

// htmlResults scrapes the first organic results from the DuckDuckGo
// HTML endpoint.
func htmlResults(ctx context.Context, cfg Config, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)

	req, err := searchRequest(ctx, cfg.SearchHTMLURL+"?"+params.Encode())
	if err != nil {
		return "", err
	}
	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("search endpoint returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse search results: %w", err)
	}

	var lines []string
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find("a.result__a").First().Text())
		if title == "" {
			return true
		}
		line := fmt.Sprintf("%d. %s", len(lines)+1, title)
		if snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text()); snippet != "" {
			line += "\n" + snippet
		}
		lines = append(lines, line)
		return len(lines) < 5
	})
	return strings.Join(lines, "\n\n"), nil
}
