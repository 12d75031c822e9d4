package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// NewCustomFieldsCommand creates the custom-fields command group.
func NewCustomFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "custom-fields",
		Aliases: []string{"fields"},
		Short:   "Inspect custom fields",
		Long:    "List custom field definitions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "contacts",
		Short: "List contact custom fields",
		Long:  "List the custom fields defined for contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			fields, err := s.api.CustomFields().ListContactFields(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list contact custom fields: %w", err)
			}

			return outputCustomFields(cmd.OutOrStdout(), fields)
		},
	})

	return cmd
}

func outputCustomFields(w io.Writer, fields []*clientsuccess.CustomField) error {
	return renderOutput(w, wireList(fields), func(w io.Writer) error {
		if len(fields) == 0 {
			_, _ = io.WriteString(w, "No custom fields found\n")

			return nil
		}

		table := tablewriter.NewWriter(w)
		table.Header("ID", "Name", "Label")

		for _, field := range fields {
			_ = table.Append(formatInt(field.ID()), formatString(field.Name()), formatString(field.Label()))
		}

		return table.Render()
	})
}
