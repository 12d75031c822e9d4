package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

func TestClientsClient_List(t *testing.T) {
	t.Parallel()

	t.Run("array", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{Body: `[{"id":1,"name":"Acme"},{"id":2,"name":"Globex","externalId":"G-2"}]`})
		clients, err := NewTestClient(server.URL).Clients().List(context.Background())
		require.NoError(t, err)
		require.Len(t, clients, 2)
		assert.Equal(t, "Globex", clients[1].Name())
		assert.Equal(t, "G-2", clients[1].ExternalID())

		req := server.last(t)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/v1/clients", req.Path)
		assert.Equal(t, "test-token", req.Authorization)
	})

	t.Run("empty object", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{Body: `{}`})
		clients, err := NewTestClient(server.URL).Clients().List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, clients)
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{Status: http.StatusInternalServerError})
		_, err := NewTestClient(server.URL).Clients().List(context.Background())
		require.ErrorIs(t, err, clientsuccess.ErrInternalServerError)
	})
}

func TestClientsClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("assigns id from location", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{Status: http.StatusCreated, Location: "/clients/1300"})

		client, err := clientsuccess.NewClient(map[string]any{"name": "Acme", "external_id": "A-1"})
		require.NoError(t, err)

		ok, err := NewTestClient(server.URL).Clients().Create(context.Background(), client)
		require.NoError(t, err)
		assert.True(t, ok)

		id, present := client.ID()
		assert.True(t, present)
		assert.Equal(t, 1300, id)

		req := server.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/v1/clients", req.Path)
		assert.JSONEq(t, `{"name":"Acme","externalId":"A-1"}`, req.Body)
	})

	t.Run("unprocessable entity", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{Status: http.StatusUnprocessableEntity, Body: `{"error":"name missing"}`})

		client, err := clientsuccess.NewClient(nil)
		require.NoError(t, err)

		ok, err := NewTestClient(server.URL).Clients().Create(context.Background(), client)
		require.NoError(t, err)
		assert.False(t, ok)

		_, present := client.ID()
		assert.False(t, present)
	})

	t.Run("missing location", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{Status: http.StatusCreated})

		client, err := clientsuccess.NewClient(nil)
		require.NoError(t, err)

		_, err = NewTestClient(server.URL).Clients().Create(context.Background(), client)
		require.ErrorIs(t, err, clientsuccess.ErrInvalidLocation)
	})

	t.Run("nil client", func(t *testing.T) {
		t.Parallel()

		_, err := NewTestClient("http://unused").Clients().Create(context.Background(), nil)
		require.ErrorIs(t, err, clientsuccess.ErrNilResource)
	})
}

func TestClientsClient_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		response  stubResponse
		fetch     func(clientsuccess.ClientsClient) (*clientsuccess.Client, error)
		wantPath  string
		wantQuery string
		wantName  string
		wantNil   bool
		wantErr   error
	}{
		{
			name:     "by id",
			response: stubResponse{Body: `{"id":9,"name":"Acme","inceptionDate":"2017-03-01T00:00:00"}`},
			fetch: func(c clientsuccess.ClientsClient) (*clientsuccess.Client, error) {
				return c.Get(context.Background(), 9)
			},
			wantPath: "/v1/clients/9",
			wantName: "Acme",
		},
		{
			name:     "by id not found",
			response: stubResponse{Status: http.StatusNotFound},
			fetch: func(c clientsuccess.ClientsClient) (*clientsuccess.Client, error) {
				return c.Get(context.Background(), 9)
			},
			wantPath: "/v1/clients/9",
			wantNil:  true,
		},
		{
			name:     "by external id",
			response: stubResponse{Body: `{"id":9,"name":"Acme","externalId":"A 1"}`},
			fetch: func(c clientsuccess.ClientsClient) (*clientsuccess.Client, error) {
				return c.GetByExternalID(context.Background(), "A 1")
			},
			wantPath:  "/v1/clients",
			wantQuery: "externalId=A+1",
			wantName:  "Acme",
		},
		{
			name:     "by external id not found",
			response: stubResponse{Status: http.StatusNotFound},
			fetch: func(c clientsuccess.ClientsClient) (*clientsuccess.Client, error) {
				return c.GetByExternalID(context.Background(), "missing")
			},
			wantPath:  "/v1/clients",
			wantQuery: "externalId=missing",
			wantNil:   true,
		},
		{
			name:     "forbidden propagates",
			response: stubResponse{Status: http.StatusForbidden},
			fetch: func(c clientsuccess.ClientsClient) (*clientsuccess.Client, error) {
				return c.Get(context.Background(), 9)
			},
			wantPath: "/v1/clients/9",
			wantErr:  clientsuccess.ErrForbidden,
		},
		{
			name:     "invalid json",
			response: stubResponse{Body: `<html>`},
			fetch: func(c clientsuccess.ClientsClient) (*clientsuccess.Client, error) {
				return c.Get(context.Background(), 9)
			},
			wantPath: "/v1/clients/9",
			wantErr:  clientsuccess.ErrUnexpectedResponse,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newStubServer(t, tt.response)
			client, err := tt.fetch(NewTestClient(server.URL).Clients())

			req := server.last(t)
			assert.Equal(t, tt.wantPath, req.Path)
			assert.Equal(t, tt.wantQuery, req.Query)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, client)

				return
			}

			require.NotNil(t, client)
			assert.Equal(t, tt.wantName, client.Name())
		})
	}
}

func TestClientsClient_Update(t *testing.T) {
	t.Parallel()

	t.Run("sends all attributes", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{Status: http.StatusOK})

		client, err := clientsuccess.NewClient(map[string]any{"id": 9, "name": "Acme", "siteUrl": "https://acme.test"})
		require.NoError(t, err)

		ok, err := NewTestClient(server.URL).Clients().Update(context.Background(), client)
		require.NoError(t, err)
		assert.True(t, ok)

		req := server.last(t)
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/v1/clients/9", req.Path)
		assert.JSONEq(t, `{"id":9,"name":"Acme","siteUrl":"https://acme.test"}`, req.Body)
	})

	t.Run("unprocessable entity", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{Status: http.StatusUnprocessableEntity})

		client, err := clientsuccess.NewClient(map[string]any{"id": 9})
		require.NoError(t, err)

		ok, err := NewTestClient(server.URL).Clients().Update(context.Background(), client)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("without id", func(t *testing.T) {
		t.Parallel()

		server := newStubServer(t, stubResponse{})

		client, err := clientsuccess.NewClient(map[string]any{"name": "Acme"})
		require.NoError(t, err)

		_, err = NewTestClient(server.URL).Clients().Update(context.Background(), client)
		require.ErrorIs(t, err, clientsuccess.ErrMissingID)
		assert.Equal(t, 0, server.count())
	})
}

func TestClientsClient_UpdateCustomField(t *testing.T) {
	t.Parallel()

	server := newStubServer(t, stubResponse{Status: http.StatusOK})
	api := NewTestClient(server.URL)

	ok, err := api.Clients().UpdateCustomField(context.Background(), clientsuccess.ByID(9), map[string]any{"Renewal Owner": "Ada"})
	require.NoError(t, err)
	assert.True(t, ok)

	req := server.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/v1/customfield/value/client/9", req.Path)
	assert.JSONEq(t, `{"Renewal Owner":"Ada"}`, req.Body)

	_, err = api.Clients().UpdateCustomField(context.Background(), clientsuccess.Ref{}, nil)
	require.ErrorIs(t, err, clientsuccess.ErrMissingID)
}

func TestClientsClient_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantOK  bool
		wantErr error
	}{
		{name: "deleted", status: http.StatusNoContent, wantOK: true},
		{name: "conflict", status: http.StatusConflict, wantOK: false},
		{name: "not found propagates", status: http.StatusNotFound, wantErr: clientsuccess.ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newStubServer(t, stubResponse{Status: tt.status})

			client, err := clientsuccess.NewClient(map[string]any{"id": 12})
			require.NoError(t, err)

			ok, err := NewTestClient(server.URL).Clients().Delete(context.Background(), clientsuccess.ByResource(client))
			assert.Equal(t, "/v1/clients/12", server.last(t).Path)
			assert.Equal(t, http.MethodDelete, server.last(t).Method)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
