package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/ajvoice/go-aj/internal/log"
)

// newsFeeds maps spoken topics onto RSS feed URLs.
var newsFeeds = map[string]string{
	"technology": "https://feeds.feedburner.com/TechCrunch",
	"business":   "https://feeds.bbci.co.uk/news/business/rss.xml",
	"world":      "https://feeds.bbci.co.uk/news/world/rss.xml",
	"science":    "https://rss.nytimes.com/services/xml/rss/nyt/Science.xml",
	"health":     "https://rss.nytimes.com/services/xml/rss/nyt/Health.xml",
	"sports":     "https://sports.yahoo.com/rss/",
	"us":         "https://feeds.bbci.co.uk/news/world/us_and_canada/rss.xml",
}

// newsTool reads the RSS feed for a topic and summarizes the latest
// headlines.
func newsTool(cfg Config) Tool {
	return Tool{
		Name:        "get_news",
		Description: "Get latest news on a specific topic.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type":        "string",
					"description": "News topic (e.g., technology, business, sports)",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of news items to return (default: 5)",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			topic := strings.TrimSpace(stringArg(args, "topic", "technology"))
			if topic == "" {
				topic = "technology"
			}
			count := intArg(args, "count", 5)
			if count < 1 {
				count = 5
			}

			feedURL, ok := newsFeeds[strings.ToLower(topic)]
			if !ok {
				feedURL = newsFeeds["technology"]
			}

			parser := gofeed.NewParser()
			parser.Client = cfg.HTTPClient
			feed, err := parser.ParseURLWithContext(feedURL, ctx)
			if err != nil {
				log.Error("news fetch failed", "topic", topic, "feed", feedURL, "error", err)
				return fmt.Sprintf("An error occurred while retrieving news for %s: %v", topic, err), nil
			}

			items := feed.Items
			if len(items) > count {
				items = items[:count]
			}

			var formatted []string
			for i, item := range items {
				published := item.Published
				if published == "" {
					published = "N/A"
				}

				summary := item.Description
				if summary == "" {
					summary = item.Content
				}
				if summary == "" {
					summary = "No summary available."
				} else {
					summary = stripHTML(summary)
				}
				if r := []rune(summary); len(r) > 200 {
					summary = string(r[:200]) + "..."
				}

				formatted = append(formatted, fmt.Sprintf("\n%d. %s\nPublished: %s\n%s\nLink: %s\n",
					i+1, item.Title, published, summary, item.Link))
			}

			source := feed.Title
			if source == "" {
				source = "Unknown Source"
			}

			log.Info("news retrieved", "topic", topic, "count", len(formatted), "source", source)
			return fmt.Sprintf("Latest %s News from %s:\n\n%s",
				capitalize(topic), source, strings.Join(formatted, "\n")), nil
		},
	}
}

// stripHTML flattens markup in feed summaries down to plain text.
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
