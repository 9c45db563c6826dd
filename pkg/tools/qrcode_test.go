package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"
)

func TestGenerateQRCode(t *testing.T) {
	tool := qrCodeTool()
	got, err := tool.Handler(context.Background(), map[string]any{"data": "https://example.com"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	encoded, ok := strings.CutPrefix(got, "QR Code generated for: https://example.com\nBase64 encoded image: ")
	if !ok {
		t.Fatalf("unexpected result shape: %q", got)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("decoded payload is not a PNG")
	}
}

func TestGenerateQRCodeValidation(t *testing.T) {
	tool := qrCodeTool()

	got, err := tool.Handler(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "QR code generation failed: No data provided" {
		t.Errorf("empty-data message = %q", got)
	}

	for _, size := range []float64{0, 41} {
		got, err := tool.Handler(context.Background(), map[string]any{"data": "x", "size": size})
		if err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if got != "QR code generation failed: Size must be between 1 and 40" {
			t.Errorf("size %v message = %q", size, got)
		}
	}
}
