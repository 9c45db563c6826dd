package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ajvoice/go-aj/internal/log"
)

// stockPriceTool reports the latest quote for a ticker from the Yahoo
// Finance chart API.
func stockPriceTool(cfg Config) Tool {
	return Tool{
		Name:        "get_stock_price",
		Description: "Get the current stock price and recent performance for a given ticker symbol.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"symbol": map[string]any{
					"type":        "string",
					"description": "Stock ticker symbol (e.g., AAPL, MSFT, GOOGL)",
				},
			},
			"required": []string{"symbol"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			symbol := strings.ToUpper(strings.TrimSpace(stringArg(args, "symbol", "")))
			if symbol == "" {
				return "Could not retrieve stock information: no ticker symbol was provided.", nil
			}

			resp, err := get(ctx, cfg.HTTPClient, cfg.StockAPIURL+url.PathEscape(symbol))
			if err != nil {
				log.Error("stock lookup failed", "symbol", symbol, "error", err)
				return fmt.Sprintf("An error occurred while retrieving stock information for %s: %v", symbol, err), nil
			}
			defer resp.Body.Close()
			if resp.StatusCode == 404 {
				return fmt.Sprintf("Could not find stock information for %s.", symbol), nil
			}
			if resp.StatusCode != 200 {
				log.Error("stock API request failed", "symbol", symbol, "status", resp.StatusCode)
				return fmt.Sprintf("An error occurred while retrieving stock information for %s: status code %d", symbol, resp.StatusCode), nil
			}

			var payload struct {
				Chart struct {
					Result []struct {
						Meta struct {
							Symbol             string   `json:"symbol"`
							ShortName          string   `json:"shortName"`
							LongName           string   `json:"longName"`
							RegularMarketPrice *float64 `json:"regularMarketPrice"`
							ChartPreviousClose *float64 `json:"chartPreviousClose"`
							PreviousClose      *float64 `json:"previousClose"`
							MarketCap          *float64 `json:"marketCap"`
						} `json:"meta"`
					} `json:"result"`
					Error *struct {
						Code        string `json:"code"`
						Description string `json:"description"`
					} `json:"error"`
				} `json:"chart"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				log.Error("stock lookup failed", "symbol", symbol, "error", err)
				return fmt.Sprintf("An error occurred while retrieving stock information for %s: %v", symbol, err), nil
			}

			if payload.Chart.Error != nil {
				log.Warn("stock API returned error", "symbol", symbol, "code", payload.Chart.Error.Code)
				return fmt.Sprintf("Could not find stock information for %s.", symbol), nil
			}
			if len(payload.Chart.Result) == 0 {
				return fmt.Sprintf("Could not find stock information for %s.", symbol), nil
			}

			meta := payload.Chart.Result[0].Meta
			prev := meta.ChartPreviousClose
			if prev == nil {
				prev = meta.PreviousClose
			}
			if meta.RegularMarketPrice == nil || prev == nil {
				return fmt.Sprintf("Could not find stock information for %s.", symbol), nil
			}

			name := meta.ShortName
			if name == "" {
				name = meta.LongName
			}
			if name == "" {
				name = symbol
			}

			change := *meta.RegularMarketPrice - *prev
			pct := change / *prev * 100
			sign := ""
			if change >= 0 {
				sign = "+"
			}

			marketCap := "N/A"
			if meta.MarketCap != nil {
				if mc := *meta.MarketCap; mc >= 1_000_000_000 {
					marketCap = fmt.Sprintf("$%.2fB", mc/1_000_000_000)
				} else {
					marketCap = fmt.Sprintf("$%.2fM", mc/1_000_000)
				}
			}

			log.Info("stock price retrieved", "symbol", symbol)
			return fmt.Sprintf("Stock Information for %s (%s):\nCurrent Price: $%.2f (%s%.2f, %s%.2f%%)\nPrevious Close: $%.2f\nMarket Cap: %s",
				name, symbol, *meta.RegularMarketPrice, sign, change, sign, pct, *prev, marketCap), nil
		},
	}
}
