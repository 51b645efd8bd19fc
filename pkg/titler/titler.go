package titler

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	defaultModel  = "gpt-4o-mini"
	maxInputChars = 200
)

// Generator derives a short chat title plus a category emoji from the first
// message of a conversation.
type Generator interface {
	GenerateChatTitle(ctx context.Context, content string) (title string, emoji string, err error)
}

type openAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey string) Generator {
	return &openAIGenerator{
		client: openai.NewClient(apiKey),
		model:  defaultModel,
	}
}

type titleResponse struct {
	Title string `json:"title"`
	Emoji string `json:"emoji"`
}

// Allowed category emojis: work, art, life, hobby, social.
var allowedEmojis = []string{"💼", "🎨", "🏠", "🎯", "👥"}

func (g *openAIGenerator) GenerateChatTitle(ctx context.Context, content string) (string, string, error) {
	truncated := content
	if runes := []rune(truncated); len(runes) > maxInputChars {
		truncated = string(runes[:maxInputChars])
	}

	prompt := fmt.Sprintf(
		"На основе этого содержимого чата сгенерируй короткое, осмысленное название "+
			"(максимум 40 символов) и выбери ОДИН наиболее подходящий эмодзи из следующих категорий:\n"+
			"- 💼 Работа\n- 🎨 Творчество\n- 🏠 Жизнь\n- 🎯 Хобби\n- 👥 Общение\n\n"+
			"Содержимое: %q", truncated)

	schema, err := jsonschema.GenerateSchemaForType(titleResponse{})
	if err != nil {
		return "", "", fmt.Errorf("build title schema: %w", err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Ты генератор названий для чатов. Будь кратким и точным."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 50,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "chat_title",
				Schema: schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("openai title completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("openai returned no choices")
	}

	var parsed titleResponse
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return "", "", fmt.Errorf("parse title response: %w", err)
	}
	if parsed.Title == "" {
		return "", "", fmt.Errorf("openai returned empty title")
	}

	if !isAllowedEmoji(parsed.Emoji) {
		parsed.Emoji = "💭"
	}

	return parsed.Title, parsed.Emoji, nil
}

func isAllowedEmoji(e string) bool {
	for _, a := range allowedEmojis {
		if e == a {
			return true
		}
	}
	return false
}
