package client

import (
	"fmt"

	"github.com/fivetwenty-io/clientsuccess/internal/http"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// clientScoped is implemented by resources that know their owning client.
type clientScoped interface {
	ClientID() (int, bool)
}

// idAssigner is implemented by resources whose id is set after creation.
type idAssigner interface {
	clientsuccess.Identified
	SetID(id int) error
}

// resolveClientID prefers the explicit client reference and falls back to
// the client_id attribute of scoped.
func resolveClientID(client clientsuccess.Ref, scoped clientScoped) (int, error) {
	if !client.IsZero() {
		id, ok := client.Resolve()
		if !ok {
			return 0, clientsuccess.ErrMissingClientID
		}

		return id, nil
	}

	if scoped != nil {
		if id, ok := scoped.ClientID(); ok {
			return id, nil
		}
	}

	return 0, clientsuccess.ErrMissingClientID
}

// assignCreatedID copies the id from the Location header of a create
// response onto res.
func assignCreatedID(resp *http.Response, res idAssigner) error {
	id, err := http.ExtractID(resp.Location())
	if err != nil {
		return err
	}

	if current, ok := res.ID(); ok && current == id {
		return nil
	}

	err = res.SetID(id)
	if err != nil {
		return fmt.Errorf("assigning id %d: %w", id, err)
	}

	return nil
}

// objectList returns the JSON objects of an array response. Anything other
// than an array, such as the {} sent for an empty collection, is an empty
// list.
func objectList(data any) ([]map[string]any, error) {
	items, ok := data.([]any)
	if !ok {
		return nil, nil
	}

	out := make([]map[string]any, 0, len(items))

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", clientsuccess.ErrUnexpectedResponse, i, item)
		}

		out = append(out, obj)
	}

	return out, nil
}

// object returns the JSON object of a single-resource response.
func object(resp *http.Response) (map[string]any, error) {
	obj, ok := resp.Object()
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %T", clientsuccess.ErrUnexpectedResponse, resp.Data)
	}

	return obj, nil
}
