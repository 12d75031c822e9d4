// Package clientsuccess provides types, interfaces, and helpers for working
// with the ClientSuccess Open API and Usage API.
//
// # Overview
//
// The package defines the resource types (Client, Contact, CustomField,
// CustomFieldValue), the interfaces of the resource-oriented clients
// (ClientsClient, ContactsClient, CustomFieldsClient, UsageAPI), the error
// taxonomy returned by the transport, and client configuration. A concrete
// implementation is provided by the csclient package, which wires the
// transport and token acquisition. Most consumers import csclient to build a
// client and use the interfaces declared here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
//	  "github.com/fivetwenty-io/clientsuccess/pkg/csclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  api, err := csclient.New(&clientsuccess.Config{Email: "me@example.com", Password: "secret"})
//	  if err != nil { log.Fatal(err) }
//
//	  client, err := api.Clients().GetByExternalID(ctx, "ABC123")
//	  if err != nil { log.Fatal(err) }
//	  if client == nil { log.Print("no such client") }
//	}
//
// # Resources
//
// Resources are built from the camelCase JSON the API returns. Attribute
// names are snake_case on the Go side (external_id, custom_field_values) and
// are converted back to camelCase when a resource is sent. Every resource type
// has a declared schema in Schemas; nested declared attributes hold resource
// instances, and the id attribute is read-only once assigned.
//
// # Errors
//
// Non-2xx responses are returned as *APIError, classified by status code into
// an ErrorKind. Helpers such as IsNotFound, IsConflict, and
// IsUnprocessableEntity make it easy to branch on common cases; the resource
// clients already turn the expected ones into nil or false results.
//
// # Tokens
//
// The access token is requested on first use and cached for the lifetime of
// the client. It is never refreshed automatically. Call InvalidateToken to
// force a new token on the next request.
package clientsuccess
