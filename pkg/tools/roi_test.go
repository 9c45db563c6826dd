package tools

import (
	"context"
	"strings"
	"testing"
)

func TestCalculateROI(t *testing.T) {
	tool := roiTool()
	got, err := tool.Handler(context.Background(), map[string]any{
		"initial_investment": float64(1000),
		"final_value":        float64(1200),
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	want := "ROI Analysis:\nInitial Investment: $1,000.00\nFinal Value: $1,200.00\nNet Return: $200.00\nTime Period: 1.00 years\n\nROI: 20.00%"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "Annualized") {
		t.Errorf("one-year ROI should not include an annualized line: %q", got)
	}
}

func TestCalculateROIAnnualized(t *testing.T) {
	tool := roiTool()
	got, err := tool.Handler(context.Background(), map[string]any{
		"initial_investment": float64(1000),
		"final_value":        float64(1200),
		"time_period_years":  float64(2),
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if !strings.Contains(got, "Time Period: 2.00 years") {
		t.Errorf("time period missing: %q", got)
	}
	if !strings.HasSuffix(got, "\nAnnualized ROI: 9.54%") {
		t.Errorf("annualized line missing or wrong: %q", got)
	}
}

func TestCalculateROILoss(t *testing.T) {
	tool := roiTool()
	got, err := tool.Handler(context.Background(), map[string]any{
		"initial_investment": float64(1000),
		"final_value":        float64(800),
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !strings.Contains(got, "Net Return: $-200.00") || !strings.Contains(got, "ROI: -20.00%") {
		t.Errorf("loss not reported correctly: %q", got)
	}
}

func TestCalculateROIValidation(t *testing.T) {
	tool := roiTool()
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "zero investment",
			args: map[string]any{"initial_investment": float64(0), "final_value": float64(100)},
			want: "Initial investment must be greater than zero.",
		},
		{
			name: "negative period",
			args: map[string]any{"initial_investment": float64(100), "final_value": float64(120), "time_period_years": float64(-1)},
			want: "Time period must be greater than zero.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tool.Handler(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
