package crmclient

import (
	"fmt"

	"github.com/fivetwenty-io/crm-client/internal/client"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// New creates a client whose resource clients share one crm.BaseClient built
// from config.
func New(config *crm.ClientConfiguration) (crm.Client, error) {
	if config == nil {
		return nil, crm.NewBuildError("client configuration is required")
	}

	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewFromSettings builds a configuration from settings and creates a client.
func NewFromSettings(settings *Settings) (crm.Client, error) {
	builder, err := NewBuilderFromSettings(settings)
	if err != nil {
		return nil, err
	}

	config, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return New(config)
}

// NewWithAPIKey creates a client with the default request maker and parser
// that authenticates with an API key.
func NewWithAPIKey(baseURL, apiKey string) (crm.Client, error) {
	builder, err := NewBuilder().WithBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	_, err = builder.WithAPIKey(apiKey)
	if err != nil {
		return nil, err
	}

	return buildDefault(builder)
}

// NewWithAccessKey creates a client with the default request maker and
// parser that authenticates with a bearer access key.
func NewWithAccessKey(baseURL, accessKey string) (crm.Client, error) {
	builder, err := NewBuilder().WithBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	_, err = builder.WithAccessKey(accessKey)
	if err != nil {
		return nil, err
	}

	return buildDefault(builder)
}

func buildDefault(builder *Builder) (crm.Client, error) {
	config, err := builder.WithDefaultRequestMaker().WithDefaultParser().Build()
	if err != nil {
		return nil, err
	}

	return New(config)
}
