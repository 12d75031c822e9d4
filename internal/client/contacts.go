package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/clientsuccess/internal/http"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

const contactsPath = "/contacts"

// ContactsClient implements clientsuccess.ContactsClient.
type ContactsClient struct {
	httpClient *http.Client
}

// NewContactsClient creates a new contacts client.
func NewContactsClient(httpClient *http.Client) *ContactsClient {
	return &ContactsClient{
		httpClient: httpClient,
	}
}

// contactsPathFor nests the contacts collection under a client, optionally
// addressing a single contact.
func contactsPathFor(clientID int, contactID ...int) string {
	path := clientsPath + "/" + strconv.Itoa(clientID) + contactsPath
	for _, id := range contactID {
		path += "/" + strconv.Itoa(id)
	}

	return path
}

// ListFor implements clientsuccess.ContactsClient.ListFor.
func (c *ContactsClient) ListFor(ctx context.Context, client clientsuccess.Ref) ([]*clientsuccess.Contact, error) {
	clientID, ok := client.Resolve()
	if !ok {
		return nil, fmt.Errorf("listing contacts: %w", clientsuccess.ErrMissingClientID)
	}

	resp, err := c.httpClient.Get(ctx, contactsPathFor(clientID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	objects, err := objectList(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("parsing contacts list: %w", err)
	}

	contacts := make([]*clientsuccess.Contact, 0, len(objects))

	for _, obj := range objects {
		contact, err := clientsuccess.NewContact(obj)
		if err != nil {
			return nil, fmt.Errorf("parsing contact: %w", err)
		}

		contacts = append(contacts, contact)
	}

	return contacts, nil
}

// Create implements clientsuccess.ContactsClient.Create.
func (c *ContactsClient) Create(ctx context.Context, contact *clientsuccess.Contact, client clientsuccess.Ref) (bool, error) {
	return c.create(ctx, contact, client, "")
}

// CreateDetailed implements clientsuccess.ContactsClient.CreateDetailed.
func (c *ContactsClient) CreateDetailed(ctx context.Context, contact *clientsuccess.Contact, client clientsuccess.Ref) (bool, error) {
	return c.create(ctx, contact, client, "/details")
}

func (c *ContactsClient) create(ctx context.Context, contact *clientsuccess.Contact, client clientsuccess.Ref, suffix string) (bool, error) {
	if contact == nil {
		return false, fmt.Errorf("creating contact: %w", clientsuccess.ErrNilResource)
	}

	if _, ok := contact.ID(); ok {
		return false, fmt.Errorf("creating contact: %w", clientsuccess.ErrContactHasID)
	}

	clientID, err := resolveClientID(client, contact)
	if err != nil {
		return false, fmt.Errorf("creating contact: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, contactsPathFor(clientID)+suffix, contact.ToWireJSON())
	if clientsuccess.IsUnprocessableEntity(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("creating contact: %w", err)
	}

	err = assignCreatedID(resp, contact)
	if err != nil {
		return false, fmt.Errorf("creating contact: %w", err)
	}

	return true, nil
}

// Get implements clientsuccess.ContactsClient.Get.
func (c *ContactsClient) Get(ctx context.Context, id int, client clientsuccess.Ref) (*clientsuccess.Contact, error) {
	clientID, ok := client.Resolve()
	if !ok {
		return nil, fmt.Errorf("getting contact: %w", clientsuccess.ErrMissingClientID)
	}

	return c.fetch(ctx, contactsPathFor(clientID, id), nil)
}

// GetDetails implements clientsuccess.ContactsClient.GetDetails.
func (c *ContactsClient) GetDetails(ctx context.Context, id int, client clientsuccess.Ref) (*clientsuccess.Contact, error) {
	clientID, ok := client.Resolve()
	if !ok {
		return nil, fmt.Errorf("getting contact details: %w", clientsuccess.ErrMissingClientID)
	}

	return c.fetch(ctx, contactsPathFor(clientID, id)+"/details", nil)
}

// Find implements clientsuccess.ContactsClient.Find.
func (c *ContactsClient) Find(ctx context.Context, clientExternalID, email string) (*clientsuccess.Contact, error) {
	return c.fetch(ctx, contactsPath, url.Values{
		"clientExternalId": {clientExternalID},
		"email":            {email},
	})
}

func (c *ContactsClient) fetch(ctx context.Context, path string, query url.Values) (*clientsuccess.Contact, error) {
	resp, err := c.httpClient.Get(ctx, path, query)
	if clientsuccess.IsNotFound(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}

	obj, err := object(resp)
	if err != nil {
		return nil, fmt.Errorf("parsing contact: %w", err)
	}

	contact, err := clientsuccess.NewContact(obj)
	if err != nil {
		return nil, fmt.Errorf("parsing contact: %w", err)
	}

	return contact, nil
}

// UpdateDetails implements clientsuccess.ContactsClient.UpdateDetails.
func (c *ContactsClient) UpdateDetails(ctx context.Context, contact *clientsuccess.Contact, client clientsuccess.Ref) (bool, error) {
	if contact == nil {
		return false, fmt.Errorf("updating contact details: %w", clientsuccess.ErrNilResource)
	}

	contactID, ok := contact.ID()
	if !ok {
		return false, fmt.Errorf("updating contact details: %w", clientsuccess.ErrMissingID)
	}

	clientID, err := resolveClientID(client, contact)
	if err != nil {
		return false, fmt.Errorf("updating contact details: %w", err)
	}

	_, err = c.httpClient.Put(ctx, contactsPathFor(clientID, contactID)+"/details", contact.ToWireJSON())
	if clientsuccess.IsUnprocessableEntity(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("updating contact details: %w", err)
	}

	return true, nil
}

// Delete implements clientsuccess.ContactsClient.Delete. When client is empty
// and contact refers to a Contact instance, its client_id is used.
func (c *ContactsClient) Delete(ctx context.Context, contact clientsuccess.Ref, client clientsuccess.Ref) (bool, error) {
	contactID, ok := contact.Resolve()
	if !ok {
		return false, fmt.Errorf("deleting contact: %w", clientsuccess.ErrMissingID)
	}

	scoped, _ := contact.Resource().(clientScoped)

	clientID, err := resolveClientID(client, scoped)
	if err != nil {
		return false, fmt.Errorf("deleting contact: %w", err)
	}

	_, err = c.httpClient.Delete(ctx, contactsPathFor(clientID, contactID))
	if clientsuccess.IsConflict(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("deleting contact: %w", err)
	}

	return true, nil
}
