package tools

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ajvoice/go-aj/internal/log"
)

const codingSystemPrompt = "You are a helpful programming assistant. Provide clear, accurate, and concise answers to technical and coding questions. Include code examples where appropriate."

// codingAnswerTool forwards technical questions to a chat completion
// model instead of trawling Stack Overflow.
func codingAnswerTool(cfg Config) Tool {
	return Tool{
		Name:        "ask_openai_coding",
		Description: "Get coding or technical answers directly from OpenAI's API instead of Stack Overflow.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "Coding or technical question to ask",
				},
				"language": map[string]any{
					"type":        "string",
					"description": "Optional programming language for context (e.g., python, javascript, java)",
				},
			},
			"required": []string{"question"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			question := stringArg(args, "question", "")
			lang := strings.TrimSpace(stringArg(args, "language", ""))

			if cfg.OpenAIKey == "" {
				log.Error("openai api key not configured")
				return "Unable to use OpenAI: API key not configured in environment variables (OPENAI_API_KEY)", nil
			}

			clientCfg := openai.DefaultConfig(cfg.OpenAIKey)
			if cfg.OpenAIBaseURL != "" {
				clientCfg.BaseURL = cfg.OpenAIBaseURL
			}
			if cfg.HTTPClient != nil {
				clientCfg.HTTPClient = cfg.HTTPClient
			}
			client := openai.NewClientWithConfig(clientCfg)

			prompt := fmt.Sprintf("As a programming expert, please answer this technical question: %s", question)
			if lang != "" {
				prompt = fmt.Sprintf("As an expert %s developer, please answer this technical question: %s", lang, question)
			}

			resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model: cfg.OpenAIModel,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleSystem, Content: codingSystemPrompt},
					{Role: openai.ChatMessageRoleUser, Content: prompt},
				},
				MaxTokens:   1024,
				Temperature: 0.2,
			})
			if err != nil {
				log.Error("openai request failed", "error", err)
				return fmt.Sprintf("An error occurred while getting an answer from OpenAI: %v", err), nil
			}
			if len(resp.Choices) == 0 {
				return "An error occurred while getting an answer from OpenAI: empty response", nil
			}

			log.Info("openai answer retrieved", "model", cfg.OpenAIModel)
			return "OpenAI Answer:\n\n" + resp.Choices[0].Message.Content, nil
		},
	}
}
