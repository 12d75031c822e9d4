package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
)

// NewEventsCommand creates the usage events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Record usage events",
		Long:  "Record product usage events through the ClientSuccess Usage API",
	}

	cmd.AddCommand(newEventsAddCommand())

	return cmd
}

func newEventsAddCommand() *cobra.Command {
	var (
		client  string
		contact string
		value   int
	)

	cmd := &cobra.Command{
		Use:   "add EVENT_ID",
		Short: "Record a usage event",
		Long: `Record a usage event for a contact of a client.

The client and contact are fetched from the Open API first so the event
carries their names and email.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := clientRef(client)
			if err != nil {
				return err
			}

			contactID, err := parseID(contact)
			if err != nil {
				return err
			}

			usage, err := newUsageClient()
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			ctx := context.Background()
			clientID, _ := ref.Resolve()

			org, err := s.api.Clients().Get(ctx, clientID)
			if err != nil {
				return fmt.Errorf("failed to get client: %w", err)
			}

			if org == nil {
				return fmt.Errorf("client %d: %w", clientID, constants.ErrOrganizationMissing)
			}

			user, err := s.api.Contacts().Get(ctx, contactID, ref)
			if err != nil {
				return fmt.Errorf("failed to get contact: %w", err)
			}

			if user == nil {
				return fmt.Errorf("contact %d: %w", contactID, constants.ErrUserMissing)
			}

			created, err := usage.AddEvent(ctx, args[0], org, user, value)
			if err != nil {
				return fmt.Errorf("failed to record event: %w", err)
			}

			if !created {
				return fmt.Errorf("event %q: %w", args[0], constants.ErrCreateRejected)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for %s at %s\n",
				args[0], user.DisplayName(), org.Name())

			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "client id")
	cmd.Flags().StringVar(&contact, "contact", "", "contact id")
	cmd.Flags().IntVar(&value, "value", constants.DefaultEventValue, "number of occurrences")
	_ = cmd.MarkFlagRequired("contact")

	return cmd
}
