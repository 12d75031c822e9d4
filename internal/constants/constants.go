package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for token acquisition and usage events.
	ShortHTTPTimeout = 10 * time.Second
)

// API endpoints and paths.
const (
	// DefaultAPIURL is the base URL of the ClientSuccess Open API.
	DefaultAPIURL = "https://api.clientsuccess.com"

	// APIVersionPrefix is prepended to every Open API path.
	APIVersionPrefix = "/v1"

	// AuthPath is the token endpoint, relative to the version prefix.
	AuthPath = "/auth"

	// DefaultUsageURL is the base URL of the Usage API.
	DefaultUsageURL = "https://usage.clientsuccess.com"

	// DefaultUsageAPIVersion is the collector version used when none is configured.
	DefaultUsageAPIVersion = "1.0.0"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "clientsuccess-go/1.0"
)

// Content types.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypePDF  = "application/pdf"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// StringTruncationLimit is the number of token characters shown before masking.
	StringTruncationLimit = 4
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Usage event defaults.
const (
	// DefaultEventValue is recorded when an event is sent without a value.
	DefaultEventValue = 1
)
