package csclient

import (
	"fmt"

	"github.com/fivetwenty-io/clientsuccess/internal/auth"
	"github.com/fivetwenty-io/clientsuccess/internal/client"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// New creates an Open API client from config.
func New(config *clientsuccess.Config) (clientsuccess.API, error) {
	api, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return api, nil
}

// NewWithPassword creates an Open API client for the default endpoint.
func NewWithPassword(email, password string) (clientsuccess.API, error) {
	return New(&clientsuccess.Config{
		Email:    email,
		Password: password,
	})
}

// NewWithToken creates an Open API client that sends an access token
// obtained earlier instead of authenticating. Invalidating the token has no
// effect.
func NewWithToken(config *clientsuccess.Config, token string) (clientsuccess.API, error) {
	api, err := client.NewWithTokenManager(config, auth.NewStaticTokenManager(token))
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return api, nil
}

// NewUsage creates a Usage API client from config.
func NewUsage(config *clientsuccess.UsageConfig) (clientsuccess.UsageAPI, error) {
	usage, err := client.NewUsage(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create usage client: %w", err)
	}

	return usage, nil
}
