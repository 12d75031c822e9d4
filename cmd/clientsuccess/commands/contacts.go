package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// NewContactsCommand creates the contacts command group.
func NewContactsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage contacts",
		Long:    "List, find, create, and delete the contacts of ClientSuccess clients",
	}

	cmd.AddCommand(newContactsListCommand())
	cmd.AddCommand(newContactsGetCommand())
	cmd.AddCommand(newContactsFindCommand())
	cmd.AddCommand(newContactsCreateCommand())
	cmd.AddCommand(newContactsDeleteCommand())

	return cmd
}

// clientRef parses the --client flag.
func clientRef(raw string) (clientsuccess.Ref, error) {
	if raw == "" {
		return clientsuccess.Ref{}, constants.ErrClientRequired
	}

	id, err := parseID(raw)
	if err != nil {
		return clientsuccess.Ref{}, err
	}

	return clientsuccess.ByID(id), nil
}

func outputContacts(w io.Writer, contacts []*clientsuccess.Contact) error {
	return renderOutput(w, wireList(contacts), func(w io.Writer) error {
		if len(contacts) == 0 {
			_, _ = io.WriteString(w, "No contacts found\n")

			return nil
		}

		table := tablewriter.NewWriter(w)
		table.Header("ID", "Client ID", "Name", "Email")

		for _, contact := range contacts {
			_ = table.Append(formatInt(contact.ID()), formatInt(contact.ClientID()),
				formatString(contact.DisplayName()), formatString(contact.Email()))
		}

		return table.Render()
	})
}

func outputContactDetails(w io.Writer, contact *clientsuccess.Contact) error {
	return renderOutput(w, contact.ToWireJSON(), func(w io.Writer) error {
		rows := [][]string{
			{"ID", formatInt(contact.ID())},
			{"Client ID", formatInt(contact.ClientID())},
			{"Name", formatString(contact.DisplayName())},
			{"Email", formatString(contact.Email())},
		}

		for _, value := range contact.CustomFieldValues() {
			rows = append(rows, []string{"Field: " + value.Name(), formatString(value.Value())})
		}

		return renderProperties(w, rows)
	})
}

func newContactsListCommand() *cobra.Command {
	var client string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Long:  "List the contacts of a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := clientRef(client)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			contacts, err := s.api.Contacts().ListFor(context.Background(), ref)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			return outputContacts(cmd.OutOrStdout(), contacts)
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "client id")

	return cmd
}

func newContactsGetCommand() *cobra.Command {
	var (
		client  string
		details bool
	)

	cmd := &cobra.Command{
		Use:   "get CONTACT_ID",
		Short: "Get contact details",
		Long:  "Display a contact of a client, optionally with its custom field details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ref, err := clientRef(client)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			get := s.api.Contacts().Get
			if details {
				get = s.api.Contacts().GetDetails
			}

			contact, err := get(context.Background(), id, ref)
			if err != nil {
				return fmt.Errorf("failed to get contact: %w", err)
			}

			if contact == nil {
				return fmt.Errorf("contact %d: %w", id, clientsuccess.ErrNotFound)
			}

			return outputContactDetails(cmd.OutOrStdout(), contact)
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "client id")
	cmd.Flags().BoolVar(&details, "details", false, "include custom field details")

	return cmd
}

func newContactsFindCommand() *cobra.Command {
	var (
		externalID string
		email      string
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a contact",
		Long:  "Find a contact by its client's external id and its email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if externalID == "" {
				return constants.ErrExternalIDRequired
			}

			if email == "" {
				return constants.ErrEmailRequired
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			contact, err := s.api.Contacts().Find(context.Background(), externalID, email)
			if err != nil {
				return fmt.Errorf("failed to find contact: %w", err)
			}

			if contact == nil {
				return fmt.Errorf("contact %q: %w", email, clientsuccess.ErrNotFound)
			}

			return outputContactDetails(cmd.OutOrStdout(), contact)
		},
	}

	cmd.Flags().StringVar(&externalID, "external-id", "", "external id of the contact's client")
	cmd.Flags().StringVarP(&email, "email", "e", "", "contact email")

	return cmd
}

func newContactsCreateCommand() *cobra.Command {
	var (
		client    string
		email     string
		firstName string
		lastName  string
		detailed  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		Long:  "Create a contact under a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := clientRef(client)
			if err != nil {
				return err
			}

			if email == "" {
				return constants.ErrEmailRequired
			}

			contact, err := clientsuccess.NewContact(map[string]any{
				"email":      email,
				"first_name": firstName,
				"last_name":  lastName,
			})
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			create := s.api.Contacts().Create
			if detailed {
				create = s.api.Contacts().CreateDetailed
			}

			created, err := create(context.Background(), contact, ref)
			if err != nil {
				return fmt.Errorf("failed to create contact: %w", err)
			}

			if !created {
				return fmt.Errorf("contact %q: %w", email, constants.ErrCreateRejected)
			}

			return outputContactDetails(cmd.OutOrStdout(), contact)
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "client id")
	cmd.Flags().StringVarP(&email, "email", "e", "", "contact email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "contact first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "contact last name")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "create through the details endpoint")

	return cmd
}

func newContactsDeleteCommand() *cobra.Command {
	var client string

	cmd := &cobra.Command{
		Use:   "delete CONTACT_ID",
		Short: "Delete a contact",
		Long:  "Delete a contact of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ref, err := clientRef(client)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			deleted, err := s.api.Contacts().Delete(context.Background(), clientsuccess.ByID(id), ref)
			if err != nil {
				return fmt.Errorf("failed to delete contact: %w", err)
			}

			if !deleted {
				return fmt.Errorf("contact %d: %w", id, constants.ErrDeleteRejected)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Contact %d deleted\n", id)

			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "client id")

	return cmd
}
