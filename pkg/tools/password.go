package tools

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/ajvoice/go-aj/internal/log"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?/"
)

// passwordTool generates a random password with at least one character
// from every enabled class.
func passwordTool() Tool {
	return Tool{
		Name:        "generate_password",
		Description: "Generate a secure random password.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"length": map[string]any{
					"type":        "integer",
					"description": "Password length (default: 16)",
				},
				"include_special_chars": map[string]any{
					"type":        "boolean",
					"description": "Whether to include special characters (default: true)",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			length := intArg(args, "length", 16)
			includeSpecial := boolArg(args, "include_special_chars", true)

			if length < 8 {
				return "Password length must be at least 8 characters for security", nil
			}
			if length > 128 {
				return "Password length must not exceed 128 characters", nil
			}

			pw, err := buildPassword(length, includeSpecial)
			if err != nil {
				log.Error("password generation failed", "error", err)
				return fmt.Sprintf("An error occurred while generating password: %v", err), nil
			}
			log.Info("password generated", "length", length, "special_chars", includeSpecial)
			return "Generated password: " + pw, nil
		},
	}
}

func buildPassword(length int, includeSpecial bool) (string, error) {
	pool := lowerChars + upperChars + digitChars
	if includeSpecial {
		pool += specialChars
	}

	out := make([]byte, 0, length)
	for _, set := range []string{lowerChars, upperChars, digitChars} {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	if includeSpecial {
		c, err := randomChar(specialChars)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := randomChar(pool)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	if err := shuffleBytes(out); err != nil {
		return "", err
	}
	return string(out), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}

func shuffleBytes(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
