package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
	"github.com/fivetwenty-io/clientsuccess/internal/http"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// UsageClient implements clientsuccess.UsageAPI.
type UsageClient struct {
	httpClient *http.Client
	projectID  string
	apiKey     string
	apiVersion string
}

// NewUsage creates a Usage API client.
func NewUsage(config *clientsuccess.UsageConfig) (*UsageClient, error) {
	if config == nil {
		return nil, clientsuccess.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	baseURL := config.URL
	if baseURL == "" {
		baseURL = constants.DefaultUsageURL
	}

	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = constants.DefaultUsageAPIVersion
	}

	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	opts = append(opts, http.WithDebug(config.Debug), http.WithUserAgent(config.UserAgent))

	timeout := config.HTTPTimeout
	if timeout == 0 {
		timeout = constants.ShortHTTPTimeout
	}

	opts = append(opts, http.WithTimeout(timeout))

	return &UsageClient{
		httpClient: http.NewClient(baseURL, nil, opts...),
		projectID:  config.ProjectID,
		apiKey:     config.APIKey,
		apiVersion: apiVersion,
	}, nil
}

// NewUsageWithHTTPClient creates a Usage API client over an existing
// transport.
func NewUsageWithHTTPClient(httpClient *http.Client, projectID, apiKey, apiVersion string) *UsageClient {
	if apiVersion == "" {
		apiVersion = constants.DefaultUsageAPIVersion
	}

	return &UsageClient{
		httpClient: httpClient,
		projectID:  projectID,
		apiKey:     apiKey,
		apiVersion: apiVersion,
	}
}

// AddEvent implements clientsuccess.UsageAPI.AddEvent. The organization is
// a client and the user is one of its contacts.
func (c *UsageClient) AddEvent(ctx context.Context, eventID string, org *clientsuccess.Client, user *clientsuccess.Contact, value int) (bool, error) {
	if org == nil || user == nil {
		return false, fmt.Errorf("adding event %q: %w", eventID, clientsuccess.ErrMissingIdentity)
	}

	if value < 0 {
		return false, fmt.Errorf("adding event %q: %w: %d", eventID, clientsuccess.ErrInvalidEventValue, value)
	}

	if value == 0 {
		value = constants.DefaultEventValue
	}

	path := fmt.Sprintf("/collector/%s/projects/%s/events/%s",
		url.PathEscape(c.apiVersion), url.PathEscape(c.projectID), url.PathEscape(eventID))

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   path,
		Query:  url.Values{"api_key": {c.apiKey}},
		Body:   eventPayload(org, user, value),
	})
	if clientsuccess.IsUnprocessableEntity(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("adding event %q: %w", eventID, err)
	}

	body, ok := resp.Object()
	if !ok {
		return false, nil
	}

	return cast.ToBool(body["created"]), nil
}

func eventPayload(org *clientsuccess.Client, user *clientsuccess.Contact, value int) map[string]any {
	return map[string]any{
		"identity": map[string]any{
			"organization": map[string]any{
				"id":   optionalID(org),
				"name": org.Name(),
			},
			"user": map[string]any{
				"id":    optionalID(user),
				"name":  user.FullName(),
				"email": user.Email(),
			},
		},
		"value": value,
	}
}

func optionalID(res clientsuccess.Identified) any {
	if id, ok := res.ID(); ok {
		return id
	}

	return nil
}
