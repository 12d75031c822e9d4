package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/clientsuccess/internal/http"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

const contactCustomFieldsPath = "/contact-custom-fields"

// CustomFieldsClient implements clientsuccess.CustomFieldsClient.
type CustomFieldsClient struct {
	httpClient *http.Client
}

// NewCustomFieldsClient creates a new custom fields client.
func NewCustomFieldsClient(httpClient *http.Client) *CustomFieldsClient {
	return &CustomFieldsClient{
		httpClient: httpClient,
	}
}

// ListContactFields implements clientsuccess.CustomFieldsClient.ListContactFields.
// A response that is not an array yields an empty list.
func (c *CustomFieldsClient) ListContactFields(ctx context.Context) ([]*clientsuccess.CustomField, error) {
	resp, err := c.httpClient.Get(ctx, contactCustomFieldsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing contact custom fields: %w", err)
	}

	objects, err := objectList(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("parsing contact custom fields: %w", err)
	}

	fields := make([]*clientsuccess.CustomField, 0, len(objects))

	for _, obj := range objects {
		field, err := clientsuccess.NewCustomField(obj)
		if err != nil {
			return nil, fmt.Errorf("parsing custom field: %w", err)
		}

		fields = append(fields, field)
	}

	return fields, nil
}
