//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"

	"github.com/studyforge/quizgen/log"
	"github.com/studyforge/quizgen/model"
)

// Model implements model.Model using an OpenAI-compatible API.
type Model struct {
	name    string
	client  openai.Client
	variant Variant
	baseURL string
}

// New creates a Model for the given model name, for example "qwen3:8b" or
// "gpt-4o-mini".
func New(name string, opts ...Option) *Model {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.BaseURL == "" && o.Variant == VariantOllama {
		o.BaseURL = ollamaDefaultBaseURL
	}

	var clientOpts []openaiopt.RequestOption
	if o.APIKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.BaseURL))
	}
	clientOpts = append(clientOpts, o.OpenAIOptions...)

	log.Debugf("openai model created: name=%s variant=%s baseURL=%s",
		name, o.Variant, o.BaseURL)
	return &Model{
		name:    name,
		client:  openai.NewClient(clientOpts...),
		variant: o.Variant,
		baseURL: o.BaseURL,
	}
}

// GenerateContent sends a chat completion request and returns the raw
// completion text. It never repairs or inspects the content.
func (m *Model) GenerateContent(
	ctx context.Context, request *model.Request,
) (*model.Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request is nil")
	}
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(m.name),
		Messages: toOpenAIMessages(request.Messages),
	}
	if request.Temperature != nil {
		params.Temperature = openai.Float(*request.Temperature)
	}
	if request.MaxTokens != nil {
		params.MaxTokens = openai.Int(int64(*request.MaxTokens))
	}

	completion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	rsp := &model.Response{
		Content: completion.Choices[0].Message.Content,
		Model:   completion.Model,
	}
	if completion.Usage.TotalTokens > 0 {
		rsp.Usage = &model.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		}
	}
	return rsp, nil
}

// Info returns basic information about the model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name}
}

// toOpenAIMessages converts messages to the client's union type.
func toOpenAIMessages(
	messages []model.Message,
) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case model.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
