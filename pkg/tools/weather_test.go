package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWeatherTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Tokyo" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "3" {
			t.Errorf("expected format=3, got query %q", r.URL.RawQuery)
		}
		fmt.Fprint(w, "Tokyo: Sunny +25°C\n")
	}))
	defer srv.Close()

	tool := weatherTool(Config{WeatherBaseURL: srv.URL, HTTPClient: srv.Client()})
	got, err := tool.Handler(context.Background(), map[string]any{"city": "Tokyo"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Tokyo: Sunny +25°C" {
		t.Errorf("expected trimmed weather line, got %q", got)
	}
}

func TestWeatherToolMissingCity(t *testing.T) {
	tool := weatherTool(Config{})
	got, err := tool.Handler(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Could not retrieve weather: no city was provided." {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestWeatherToolServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	tool := weatherTool(Config{WeatherBaseURL: srv.URL, HTTPClient: srv.Client()})
	got, err := tool.Handler(context.Background(), map[string]any{"city": "Berlin"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Could not retrieve weather for Berlin." {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestWeatherToolUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	srv.Close()

	tool := weatherTool(Config{WeatherBaseURL: srv.URL, HTTPClient: client})
	got, err := tool.Handler(context.Background(), map[string]any{"city": "Oslo"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "An error occurred while retrieving weather for Oslo." {
		t.Errorf("unexpected result: %q", got)
	}
}
