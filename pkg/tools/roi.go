package tools

import (
	"context"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajvoice/go-aj/internal/log"
)

// roiTool computes simple and annualized return on investment.
func roiTool() Tool {
	return Tool{
		Name:        "calculate_roi",
		Description: "Calculate Return on Investment (ROI) with annualized returns.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"initial_investment": map[string]any{
					"type":        "number",
					"description": "Initial investment amount",
				},
				"final_value": map[string]any{
					"type":        "number",
					"description": "Final value of the investment",
				},
				"time_period_years": map[string]any{
					"type":        "number",
					"description": "Time period in years (default: 1.0)",
				},
			},
			"required": []string{"initial_investment", "final_value"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			initial := floatArg(args, "initial_investment", 0)
			final := floatArg(args, "final_value", 0)
			years := floatArg(args, "time_period_years", 1.0)

			if initial <= 0 {
				return "Initial investment must be greater than zero.", nil
			}
			if years <= 0 {
				return "Time period must be greater than zero.", nil
			}

			net := final - initial
			roi := net / initial * 100
			annualized := roi
			if years != 1.0 {
				annualized = (math.Pow(final/initial, 1/years) - 1) * 100
			}

			p := message.NewPrinter(language.English)
			result := p.Sprintf("ROI Analysis:\nInitial Investment: $%.2f\nFinal Value: $%.2f\nNet Return: $%.2f\nTime Period: %.2f years\n\nROI: %.2f%%",
				initial, final, net, years, roi)
			if years != 1.0 {
				result += p.Sprintf("\nAnnualized ROI: %.2f%%", annualized)
			}

			log.Info("roi calculated", "roi", roi, "annualized", annualized)
			return result, nil
		},
	}
}
