//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package model defines the interface that text-generation backends
// implement and the request/response types exchanged with them.
package model

import "context"

// Role represents the role of a chat message author.
type Role string

const (
	// RoleSystem is the system prompt role.
	RoleSystem Role = "system"
	// RoleUser is the end-user role.
	RoleUser Role = "user"
	// RoleAssistant is the model response role.
	RoleAssistant Role = "assistant"
)

// Message is one chat message.
type Message struct {
	// Role is the author role.
	Role Role `json:"role"`
	// Content is the message text.
	Content string `json:"content"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Request is a single content generation request.
type Request struct {
	// Messages is the conversation so far, system prompt first.
	Messages []Message `json:"messages"`
	// Temperature optionally overrides the backend's sampling temperature.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens optionally bounds the completion length.
	MaxTokens *int `json:"max_tokens,omitempty"`
}

// Usage carries token accounting reported by the backend.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`
	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`
	// TotalTokens is the total number of tokens used.
	TotalTokens int `json:"total_tokens"`
}

// Response is the backend's answer to a Request.
type Response struct {
	// Content is the completion text, raw and unrepaired.
	Content string `json:"content"`
	// Model names the backend model that produced the completion.
	Model string `json:"model"`
	// Usage is the token accounting, when the backend reports it.
	Usage *Usage `json:"usage,omitempty"`
}

// Model is the interface for a text-generation backend.
type Model interface {
	// GenerateContent generates a completion for the request.
	GenerateContent(ctx context.Context, request *Request) (*Response, error)

	// Info returns basic information about the model.
	Info() Info
}

// Info contains basic information about a model.
type Info struct {
	// Name is the model identifier, for example "qwen3:8b".
	Name string
}

// Float64Ptr returns a pointer to the given float64 value.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to the given int value.
func IntPtr(v int) *int { return &v }
