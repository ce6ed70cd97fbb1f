package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

const insightSystemPrompt = "You are an experienced, encouraging church music director. " +
	"Suggest a setlist order based on the average votes. Golden rule: open with one or two " +
	"celebration songs (faster, upbeat) and close with deep worship (slower). Be concise " +
	"and use an inspiring tone."

// OpenAIInsight implements [InsightService] against any OpenAI-compatible
// chat completion endpoint.
type OpenAIInsight struct {
	client *openai.Client
	model  string
	logger *log.Logger
}

// InsightConfig configures the insight assistant.
type InsightConfig struct {
	Endpoint string // base URL, e.g. "https://api.openai.com/v1"
	Model    string
	APIKey   string
}

// NewOpenAIInsight creates the assistant. A missing API key is not an
// error here; SetlistInsight reports it as advisory text instead, since
// the feature is optional.
func NewOpenAIInsight(cfg InsightConfig, logger *log.Logger) *OpenAIInsight {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}

	return &OpenAIInsight{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger,
	}
}

// SetlistInsight builds the vote summary prompt and returns the
// assistant's commentary. All failure modes come back as readable text
// rather than hard errors where the user can fix them (no key, empty
// catalog); transport errors are returned for the caller to log.
func (s *OpenAIInsight) SetlistInsight(ctx context.Context, songs []models.Song) (string, error) {
	if s.model == "" {
		return "Insight assistant is not configured: set a model in the [insight] config section.", nil
	}
	if len(songs) == 0 {
		return "Add some songs to the list so I can analyze the votes and suggest a setlist!", nil
	}

	var sb strings.Builder
	for _, song := range songs {
		avg := "no votes"
		if len(song.Ratings) > 0 {
			avg = fmt.Sprintf("%.1f", song.AverageRating())
		}
		fmt.Fprintf(&sb, "- %s (%s) | Average: %s | Total votes: %d\n",
			song.Title, song.Artist, avg, len(song.Ratings))
	}

	prompt := fmt.Sprintf(
		"Analyze the following songs and our worship team's ratings for next Sunday:\n\n%s", sb.String())

	s.logger.Debug("requesting setlist insight", "model", s.model, "songs", len(songs))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: insightSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("insight request failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "Could not generate suggestions right now. Try again in a moment.", nil
	}

	return resp.Choices[0].Message.Content, nil
}
