package llmsvc

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/trezcool/prepclass/core"
	"github.com/trezcool/prepclass/core/material"
)

// systemPrompt is the fixed instruction sent with every completion request.
const systemPrompt = "You are an expert computer science mentor preparing IIT Bombay students for placements."

type openAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
}

var _ material.Generator = (*openAIGenerator)(nil)

// NewOpenAIGenerator builds a Generator backed by the OpenAI chat-completions
// API, configured from core.Conf.
func NewOpenAIGenerator() material.Generator {
	conf := openai.DefaultConfig(core.Conf.OpenAI.ApiKey)
	if core.Conf.OpenAI.BaseURL != "" {
		conf.BaseURL = core.Conf.OpenAI.BaseURL
	}
	return &openAIGenerator{
		client:      openai.NewClientWithConfig(conf),
		model:       core.Conf.OpenAI.Model,
		temperature: float32(core.Conf.OpenAI.Temperature),
	}
}

func (gen *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := gen.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       gen.model,
		Temperature: gen.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "creating chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
