// Package client implements the ClientSuccess Open API and Usage API clients.
package client

import (
	"context"
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/fivetwenty-io/clientsuccess/internal/auth"
	"github.com/fivetwenty-io/clientsuccess/internal/constants"
	"github.com/fivetwenty-io/clientsuccess/internal/http"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the clientsuccess.API interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       hclog.Logger

	clients      *ClientsClient
	contacts     *ContactsClient
	customFields *CustomFieldsClient
}

// New creates an Open API client that authenticates with the configured
// email and password on first use.
func New(config *clientsuccess.Config) (*Client, error) {
	if config == nil {
		return nil, clientsuccess.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	baseURL := normalizeURL(config.URL)
	httpOpts := createHTTPClientOptions(config)

	// Token requests go through their own unauthenticated transport.
	authHTTPClient := http.NewClient(baseURL, nil, httpOpts...)
	tokenManager := auth.NewPasswordTokenManager(authHTTPClient, config.Email, config.Password, config.Logger)

	return newClient(config, baseURL, tokenManager, httpOpts), nil
}

// NewWithTokenManager creates an Open API client that takes its token from
// tokenManager. Credentials in config are ignored.
func NewWithTokenManager(config *clientsuccess.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, clientsuccess.ErrConfigRequired
	}

	if tokenManager == nil {
		return nil, ErrNoTokenManagerConfigured
	}

	baseURL := normalizeURL(config.URL)

	return newClient(config, baseURL, tokenManager, createHTTPClientOptions(config)), nil
}

func newClient(config *clientsuccess.Config, baseURL string, tokenManager auth.TokenManager, httpOpts []http.Option) *Client {
	logger := config.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	httpClient := http.NewClient(baseURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       logger,
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.clients = NewClientsClient(c.httpClient)
	c.contacts = NewContactsClient(c.httpClient)
	c.customFields = NewCustomFieldsClient(c.httpClient)
}

// normalizeURL trims a trailing slash and adds "https://" when no scheme is
// present.
func normalizeURL(raw string) string {
	if raw == "" {
		return constants.DefaultAPIURL
	}

	normalized := strings.TrimSuffix(raw, "/")
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *clientsuccess.Config) []http.Option {
	httpOpts := []http.Option{http.WithPathPrefix(constants.APIVersionPrefix)}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if len(config.RequestInterceptors) > 0 || len(config.ResponseInterceptors) > 0 {
		chain := clientsuccess.NewInterceptorChain()
		for _, interceptor := range config.RequestInterceptors {
			chain.AddRequestInterceptor(interceptor)
		}

		for _, interceptor := range config.ResponseInterceptors {
			chain.AddResponseInterceptor(interceptor)
		}

		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	return httpOpts
}

// BaseURL returns the API base URL without the version prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Clients implements clientsuccess.API.Clients.
func (c *Client) Clients() clientsuccess.ClientsClient {
	return c.clients
}

// Contacts implements clientsuccess.API.Contacts.
func (c *Client) Contacts() clientsuccess.ContactsClient {
	return c.contacts
}

// CustomFields implements clientsuccess.API.CustomFields.
func (c *Client) CustomFields() clientsuccess.CustomFieldsClient {
	return c.customFields
}

// Token implements clientsuccess.API.Token.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokenManager.GetToken(ctx)
}

// InvalidateToken implements clientsuccess.API.InvalidateToken.
func (c *Client) InvalidateToken() {
	c.logger.Debug("access token invalidated")
	c.tokenManager.Invalidate()
}
