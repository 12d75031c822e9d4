// Package csclient provides the entry points for constructing ClientSuccess
// API clients that implement the clientsuccess.API and clientsuccess.UsageAPI
// interfaces.
//
// It wires configuration, the HTTP transport, and token acquisition on top of
// the resource interfaces and types defined in the clientsuccess package.
//
// Quick start
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
//
//	  api, err := csclient.NewWithPassword("me@example.com", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  clients, err := api.Clients().List(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  // Usage events go to a separate API keyed by project.
//	  usage, err := csclient.NewUsage(&clientsuccess.UsageConfig{ProjectID: "p", APIKey: "k"})
//	  if err != nil { log.Fatal(err) }
//
//	  contact, err := api.Contacts().Find(ctx, clients[0].ExternalID(), "ada@example.com")
//	  if err != nil || contact == nil { log.Fatal("no contact") }
//
//	  _, _ = usage.AddEvent(ctx, "login", clients[0], contact, 1)
//	}
//
// The access token is requested on first use and cached until
// InvalidateToken is called.
package csclient
