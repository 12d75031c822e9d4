package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/clientsuccess/internal/http"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

const (
	clientsPath           = "/clients"
	clientCustomFieldPath = "/customfield/value/client"
)

// ClientsClient implements clientsuccess.ClientsClient.
type ClientsClient struct {
	httpClient *http.Client
}

// NewClientsClient creates a new clients client.
func NewClientsClient(httpClient *http.Client) *ClientsClient {
	return &ClientsClient{
		httpClient: httpClient,
	}
}

// List implements clientsuccess.ClientsClient.List.
func (c *ClientsClient) List(ctx context.Context) ([]*clientsuccess.Client, error) {
	resp, err := c.httpClient.Get(ctx, clientsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	objects, err := objectList(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("parsing clients list: %w", err)
	}

	clients := make([]*clientsuccess.Client, 0, len(objects))

	for _, obj := range objects {
		client, err := clientsuccess.NewClient(obj)
		if err != nil {
			return nil, fmt.Errorf("parsing client: %w", err)
		}

		clients = append(clients, client)
	}

	return clients, nil
}

// Create implements clientsuccess.ClientsClient.Create.
func (c *ClientsClient) Create(ctx context.Context, client *clientsuccess.Client) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("creating client: %w", clientsuccess.ErrNilResource)
	}

	resp, err := c.httpClient.Post(ctx, clientsPath, client.ToWireJSON())
	if clientsuccess.IsUnprocessableEntity(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("creating client: %w", err)
	}

	err = assignCreatedID(resp, client)
	if err != nil {
		return false, fmt.Errorf("creating client: %w", err)
	}

	return true, nil
}

// Get implements clientsuccess.ClientsClient.Get.
func (c *ClientsClient) Get(ctx context.Context, id int) (*clientsuccess.Client, error) {
	return c.fetch(ctx, clientsPath+"/"+strconv.Itoa(id), nil)
}

// GetByExternalID implements clientsuccess.ClientsClient.GetByExternalID.
func (c *ClientsClient) GetByExternalID(ctx context.Context, externalID string) (*clientsuccess.Client, error) {
	return c.fetch(ctx, clientsPath, url.Values{"externalId": {externalID}})
}

func (c *ClientsClient) fetch(ctx context.Context, path string, query url.Values) (*clientsuccess.Client, error) {
	resp, err := c.httpClient.Get(ctx, path, query)
	if clientsuccess.IsNotFound(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("getting client: %w", err)
	}

	obj, err := object(resp)
	if err != nil {
		return nil, fmt.Errorf("parsing client: %w", err)
	}

	client, err := clientsuccess.NewClient(obj)
	if err != nil {
		return nil, fmt.Errorf("parsing client: %w", err)
	}

	return client, nil
}

// Update implements clientsuccess.ClientsClient.Update. The API expects every
// attribute of the client.
func (c *ClientsClient) Update(ctx context.Context, client *clientsuccess.Client) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("updating client: %w", clientsuccess.ErrNilResource)
	}

	id, ok := client.ID()
	if !ok {
		return false, fmt.Errorf("updating client: %w", clientsuccess.ErrMissingID)
	}

	_, err := c.httpClient.Put(ctx, clientsPath+"/"+strconv.Itoa(id), client.ToWireJSON())
	if clientsuccess.IsUnprocessableEntity(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("updating client: %w", err)
	}

	return true, nil
}

// UpdateCustomField implements clientsuccess.ClientsClient.UpdateCustomField.
// Keys of values are custom field names and are sent as given.
func (c *ClientsClient) UpdateCustomField(ctx context.Context, client clientsuccess.Ref, values map[string]any) (bool, error) {
	id, ok := client.Resolve()
	if !ok {
		return false, fmt.Errorf("updating client custom field: %w", clientsuccess.ErrMissingID)
	}

	_, err := c.httpClient.Patch(ctx, clientCustomFieldPath+"/"+strconv.Itoa(id), values)
	if clientsuccess.IsUnprocessableEntity(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("updating client custom field: %w", err)
	}

	return true, nil
}

// Delete implements clientsuccess.ClientsClient.Delete.
func (c *ClientsClient) Delete(ctx context.Context, client clientsuccess.Ref) (bool, error) {
	id, ok := client.Resolve()
	if !ok {
		return false, fmt.Errorf("deleting client: %w", clientsuccess.ErrMissingID)
	}

	_, err := c.httpClient.Delete(ctx, clientsPath+"/"+strconv.Itoa(id))
	if clientsuccess.IsConflict(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("deleting client: %w", err)
	}

	return true, nil
}
