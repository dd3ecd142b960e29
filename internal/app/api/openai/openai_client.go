package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI API client for the given key.
func NewClient(apiKey string) *openai.Client {
	return openai.NewClient(apiKey)
}

// NewClientWithBaseURL builds a client against a non-default API host.
func NewClientWithBaseURL(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return openai.NewClientWithConfig(config)
}
