package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// NewClientsCommand creates the clients command group.
func NewClientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "Manage clients",
		Long:    "List, create, update, and delete ClientSuccess clients",
	}

	cmd.AddCommand(newClientsListCommand())
	cmd.AddCommand(newClientsGetCommand())
	cmd.AddCommand(newClientsGetByExternalIDCommand())
	cmd.AddCommand(newClientsCreateCommand())
	cmd.AddCommand(newClientsUpdateCommand())
	cmd.AddCommand(newClientsUpdateFieldCommand())
	cmd.AddCommand(newClientsDeleteCommand())

	return cmd
}

func newClientsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Long:  "List all clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			clients, err := s.api.Clients().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			return outputClients(cmd.OutOrStdout(), clients)
		},
	}
}

func outputClients(w io.Writer, clients []*clientsuccess.Client) error {
	return renderOutput(w, wireList(clients), func(w io.Writer) error {
		if len(clients) == 0 {
			_, _ = io.WriteString(w, "No clients found\n")

			return nil
		}

		table := tablewriter.NewWriter(w)
		table.Header("ID", "Name", "External ID", "Active")

		for _, client := range clients {
			_ = table.Append(formatInt(client.ID()), formatString(client.Name()),
				formatString(client.ExternalID()), formatBool(client.Active()))
		}

		return table.Render()
	})
}

func outputClientDetails(w io.Writer, client *clientsuccess.Client) error {
	return renderOutput(w, client.ToWireJSON(), func(w io.Writer) error {
		rows := [][]string{
			{"ID", formatInt(client.ID())},
			{"Name", formatString(client.Name())},
			{"External ID", formatString(client.ExternalID())},
			{"Active", formatBool(client.Active())},
			{"Inception Date", formatDate(client.InceptionDate())},
		}

		for _, value := range client.CustomFieldValues() {
			rows = append(rows, []string{"Field: " + value.Name(), formatString(value.Value())})
		}

		return renderProperties(w, rows)
	})
}

func newClientsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CLIENT_ID",
		Short: "Get client details",
		Long:  "Display detailed information about a specific client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			client, err := s.api.Clients().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get client: %w", err)
			}

			if client == nil {
				return fmt.Errorf("client %d: %w", id, clientsuccess.ErrNotFound)
			}

			return outputClientDetails(cmd.OutOrStdout(), client)
		},
	}
}

func newClientsGetByExternalIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-by-external-id EXTERNAL_ID",
		Short: "Get a client by external id",
		Long:  "Look up a client by the id it has in your own system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			client, err := s.api.Clients().GetByExternalID(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get client: %w", err)
			}

			if client == nil {
				return fmt.Errorf("client with external id %q: %w", args[0], clientsuccess.ErrNotFound)
			}

			return outputClientDetails(cmd.OutOrStdout(), client)
		},
	}
}

// clientFlags are the editable client attributes exposed on the command line.
type clientFlags struct {
	name       string
	externalID string
	active     string
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "client name")
	cmd.Flags().StringVar(&f.externalID, "external-id", "", "id of the client in your own system")
	cmd.Flags().StringVar(&f.active, "active", "", "whether the client is active (true or false)")
}

// attributes returns the attributes whose flags were set.
func (f *clientFlags) attributes(cmd *cobra.Command) (map[string]any, error) {
	attrs := make(map[string]any)

	if cmd.Flags().Changed("name") {
		attrs["name"] = f.name
	}

	if cmd.Flags().Changed("external-id") {
		attrs["external_id"] = f.externalID
	}

	if cmd.Flags().Changed("active") {
		active, err := cast.ToBoolE(f.active)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidActive, f.active)
		}

		attrs["active"] = active
	}

	return attrs, nil
}

func newClientsCreateCommand() *cobra.Command {
	flags := &clientFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		Long:  "Create a new client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.name == "" {
				return constants.ErrNameRequired
			}

			attrs, err := flags.attributes(cmd)
			if err != nil {
				return err
			}

			client, err := clientsuccess.NewClient(attrs)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			created, err := s.api.Clients().Create(context.Background(), client)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			if !created {
				return fmt.Errorf("client %q: %w", flags.name, constants.ErrCreateRejected)
			}

			return outputClientDetails(cmd.OutOrStdout(), client)
		},
	}

	flags.register(cmd)

	return cmd
}

func newClientsUpdateCommand() *cobra.Command {
	flags := &clientFlags{}

	cmd := &cobra.Command{
		Use:   "update CLIENT_ID",
		Short: "Update a client",
		Long:  "Fetch a client, apply the given changes and send it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			attrs, err := flags.attributes(cmd)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			ctx := context.Background()

			client, err := s.api.Clients().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get client: %w", err)
			}

			if client == nil {
				return fmt.Errorf("client %d: %w", id, clientsuccess.ErrNotFound)
			}

			for attr, value := range attrs {
				if err := client.Set(attr, value); err != nil {
					return err
				}
			}

			updated, err := s.api.Clients().Update(ctx, client)
			if err != nil {
				return fmt.Errorf("failed to update client: %w", err)
			}

			if !updated {
				return fmt.Errorf("client %d: %w", id, constants.ErrUpdateRejected)
			}

			return outputClientDetails(cmd.OutOrStdout(), client)
		},
	}

	flags.register(cmd)

	return cmd
}

func newClientsUpdateFieldCommand() *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "update-field CLIENT_ID",
		Short: "Set custom field values on a client",
		Long:  "Set one or more custom field values on a client, given as --field name=value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			values, err := parseFields(fields)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			updated, err := s.api.Clients().UpdateCustomField(context.Background(), clientsuccess.ByID(id), values)
			if err != nil {
				return fmt.Errorf("failed to update custom fields: %w", err)
			}

			if !updated {
				return fmt.Errorf("client %d: %w", id, constants.ErrUpdateRejected)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %d custom field(s) on client %d\n", len(values), id)

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "custom field as name=value (repeatable)")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func newClientsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CLIENT_ID",
		Short: "Delete a client",
		Long:  "Delete a client and its contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			deleted, err := s.api.Clients().Delete(context.Background(), clientsuccess.ByID(id))
			if err != nil {
				return fmt.Errorf("failed to delete client: %w", err)
			}

			if !deleted {
				return fmt.Errorf("client %d: %w", id, constants.ErrDeleteRejected)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Client %d deleted\n", id)

			return nil
		},
	}
}
