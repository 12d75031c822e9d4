package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
)

const defaultYAMLIndent = 2

// wireRenderable is implemented by every resource wrapper.
type wireRenderable interface {
	ToWireJSON() map[string]any
}

func wireList[T wireRenderable](items []T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.ToWireJSON())
	}

	return out
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML. Data goes through JSON first so
// json.Number values and json tags render the same way in both formats.
func StandardYAMLRenderer(w io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	var plain any

	err = json.Unmarshal(raw, &plain)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(defaultYAMLIndent)

	err = encoder.Encode(plain)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderOutput writes data in the configured output format, using table for
// the table format.
func renderOutput(w io.Writer, data any, table func(io.Writer) error) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(w, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, data)
	case constants.FormatTable, "":
		return table(w)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, output)
	}
}

// renderProperties renders a two-column property table.
func renderProperties(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row[0], row[1])
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// parseID parses a positive decimal resource id.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, raw)
	}

	return id, nil
}

// parseFields turns key=value pairs into a custom field map.
func parseFields(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldFormat, pair)
		}

		fields[strings.TrimSpace(key)] = value
	}

	return fields, nil
}

func formatInt(value int, ok bool) string {
	if !ok {
		return constants.NotAvailable
	}

	return cast.ToString(value)
}

func formatDate(value time.Time, ok bool) string {
	if !ok {
		return constants.NotAvailable
	}

	return value.Format(time.DateOnly)
}

func formatString(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// maskToken keeps only the first few characters of a token.
func maskToken(token string) string {
	if token == "" {
		return constants.NotAvailable
	}

	if len(token) <= constants.StringTruncationLimit {
		return constants.MaskedSecret
	}

	return token[:constants.StringTruncationLimit] + constants.MaskedSecret
}

func formatBool(value bool) string {
	if value {
		return constants.BooleanTrue
	}

	return constants.BooleanFalse
}
