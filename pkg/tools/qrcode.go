package tools

import (
	"context"
	"encoding/base64"
	"fmt"

	"rsc.io/qr"

	"github.com/ajvoice/go-aj/internal/log"
)

// qrCodeTool encodes text into a QR code and returns the PNG as
// base64, ready to drop into HTML or markdown.
func qrCodeTool() Tool {
	return Tool{
		Name:        "generate_qr_code",
		Description: "Generate a QR code for the given data.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"data": map[string]any{
					"type":        "string",
					"description": "Text or URL to encode in the QR code",
				},
				"size": map[string]any{
					"type":        "integer",
					"description": "Size of the QR code image (default: 10)",
				},
			},
			"required": []string{"data"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			data := stringArg(args, "data", "")
			size := intArg(args, "size", 10)

			if data == "" {
				return "QR code generation failed: No data provided", nil
			}
			if size < 1 || size > 40 {
				return "QR code generation failed: Size must be between 1 and 40", nil
			}

			code, err := qr.Encode(data, qr.L)
			if err != nil {
				log.Error("qr code generation failed", "error", err)
				return fmt.Sprintf("An error occurred while generating QR code: %v", err), nil
			}
			code.Scale = size

			preview := data
			if len(preview) > 30 {
				preview = preview[:30] + "..."
			}
			log.Info("qr code generated", "data", preview)

			return fmt.Sprintf("QR Code generated for: %s\nBase64 encoded image: %s",
				data, base64.StdEncoding.EncodeToString(code.PNG())), nil
		},
	}
}
