//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package openai provides an OpenAI-compatible model implementation. It
// covers both the hosted OpenAI API and local OpenAI-compatible servers
// such as Ollama.
package openai

import (
	openaiopt "github.com/openai/openai-go/option"
)

// Variant selects provider-specific behavior for OpenAI-compatible APIs.
type Variant string

const (
	// VariantOpenAI targets the hosted OpenAI API.
	VariantOpenAI Variant = "openai"
	// VariantOllama targets a local Ollama server through its
	// OpenAI-compatible endpoint.
	VariantOllama Variant = "ollama"
)

// ollamaDefaultBaseURL is where a local Ollama server exposes its
// OpenAI-compatible API.
const ollamaDefaultBaseURL = "http://localhost:11434/v1"

// options contains configuration options for creating a Model.
type options struct {
	// API key for the client. Ollama accepts any non-empty value.
	APIKey string
	// Base URL for the client. Optional for OpenAI-compatible APIs.
	BaseURL string
	// Variant for provider-specific behavior.
	Variant Variant
	// Extra options passed through to the underlying client.
	OpenAIOptions []openaiopt.RequestOption
}

var defaultOptions = options{
	Variant: VariantOpenAI,
}

// Option configures the Model.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(opts *options) {
		opts.APIKey = key
	}
}

// WithBaseURL sets the base URL for OpenAI-compatible APIs.
func WithBaseURL(url string) Option {
	return func(opts *options) {
		opts.BaseURL = url
	}
}

// WithVariant sets the provider variant. VariantOllama defaults the base
// URL to the local Ollama endpoint unless WithBaseURL overrides it.
func WithVariant(v Variant) Option {
	return func(opts *options) {
		opts.Variant = v
	}
}

// WithOpenAIOptions passes extra request options to the underlying client.
func WithOpenAIOptions(reqOpts ...openaiopt.RequestOption) Option {
	return func(opts *options) {
		opts.OpenAIOptions = append(opts.OpenAIOptions, reqOpts...)
	}
}
