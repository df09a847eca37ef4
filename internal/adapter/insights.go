// Package adapter wraps the chat-completion client used for optional,
// best-effort insight generation on top of the rule-based analysis.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"dottie-backend/pkg/logger"
)

// InsightsAdapter generates short educational commentary for a symptom set
// through an OpenAI-compatible endpoint.
type InsightsAdapter struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewInsightsAdapter creates an insights adapter against an
// OpenAI-compatible base URL. Works with proxy gateways that accept a
// dummy API key.
func NewInsightsAdapter(baseURL, apiKey, modelID string) *InsightsAdapter {
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"

	return &InsightsAdapter{
		client: openai.NewClientWithConfig(config),
		model:  modelID,
		logger: logger.Get(),
	}
}

// GenerateInsights asks the model for general educational context on the
// reported symptoms. The output is informational text, not a diagnosis.
func (a *InsightsAdapter) GenerateInsights(ctx context.Context, symptoms []string, age int) (string, error) {
	if len(symptoms) == 0 {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"Provide brief, general educational context about these menstrual-health symptoms: %s.",
		strings.Join(symptoms, ", "),
	)
	if age > 0 {
		prompt += fmt.Sprintf(" The person reporting them is %d years old.", age)
	}
	prompt += " Do not give a diagnosis; always advise consulting a healthcare provider."

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a health-education assistant. You provide general information only, never diagnoses.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("insight request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("insight request returned no choices")
	}

	insights := strings.TrimSpace(resp.Choices[0].Message.Content)
	a.logger.Debug("Insights generated",
		zap.Int("symptoms", len(symptoms)),
		zap.Int("length", len(insights)),
	)
	return insights, nil
}
