package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajvoice/go-aj/internal/log"
)

// currencyTool converts an amount between two currencies using live
// exchange rates.
func currencyTool(cfg Config) Tool {
	return Tool{
		Name:        "currency_converter",
		Description: "Convert currency using the latest exchange rates.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"amount": map[string]any{
					"type":        "number",
					"description": "Amount to convert",
				},
				"from_currency": map[string]any{
					"type":        "string",
					"description": "Source currency code (e.g., USD, EUR, JPY)",
				},
				"to_currency": map[string]any{
					"type":        "string",
					"description": "Target currency code (e.g., USD, EUR, JPY)",
				},
			},
			"required": []string{"amount", "from_currency", "to_currency"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			amount := floatArg(args, "amount", 0)
			from := strings.ToUpper(strings.TrimSpace(stringArg(args, "from_currency", "")))
			to := strings.ToUpper(strings.TrimSpace(stringArg(args, "to_currency", "")))
			if from == "" || to == "" {
				return "Currency conversion failed: missing currency code.", nil
			}

			params := url.Values{}
			params.Set("from", from)
			params.Set("to", to)
			params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))

			resp, err := get(ctx, cfg.HTTPClient, cfg.CurrencyAPIURL+"?"+params.Encode())
			if err != nil {
				log.Error("currency conversion failed", "from", from, "to", to, "error", err)
				return fmt.Sprintf("An error occurred during currency conversion: %v", err), nil
			}
			defer resp.Body.Close()
			if resp.StatusCode != 200 {
				log.Error("currency API request failed", "status", resp.StatusCode)
				return fmt.Sprintf("Currency conversion failed: API error (status code %d)", resp.StatusCode), nil
			}

			var payload struct {
				Success *bool    `json:"success"`
				Error   any      `json:"error"`
				Result  *float64 `json:"result"`
				Info    struct {
					Rate *float64 `json:"rate"`
				} `json:"info"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				log.Error("currency conversion failed", "from", from, "to", to, "error", err)
				return fmt.Sprintf("An error occurred during currency conversion: %v", err), nil
			}

			if payload.Success != nil && !*payload.Success {
				reason := "Unknown error"
				if payload.Error != nil {
					reason = fmt.Sprintf("%v", payload.Error)
				}
				return fmt.Sprintf("Currency conversion failed: %s", reason), nil
			}
			if payload.Result == nil || payload.Info.Rate == nil {
				return "Currency conversion failed: Invalid response data", nil
			}

			log.Info("currency converted", "amount", amount, "from", from, "to", to, "result", *payload.Result)
			return fmt.Sprintf("%v %s = %s (Rate: %.4f)",
				amount, from, formatCurrencyAmount(*payload.Result, to), *payload.Info.Rate), nil
		},
	}
}

// formatCurrencyAmount renders a value as a locale-correct currency
// string, falling back to the bare code when it is not a known ISO
// currency.
func formatCurrencyAmount(value float64, code string) string {
	p := message.NewPrinter(language.English)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%s%.2f", code, value)
	}
	return p.Sprintf("%v", currency.Symbol(unit.Amount(value)))
}
