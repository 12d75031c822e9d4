package clientsuccess

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
)

// Defaults re-exported for callers that build configuration by hand.
const (
	DefaultAPIURL          = constants.DefaultAPIURL
	APIVersionPrefix       = constants.APIVersionPrefix
	DefaultUsageURL        = constants.DefaultUsageURL
	DefaultUsageAPIVersion = constants.DefaultUsageAPIVersion
)

// ClientsClient manages clients.
type ClientsClient interface {
	// List returns every client. An empty response yields an empty list.
	List(ctx context.Context) ([]*Client, error)
	// Create posts the client and assigns the id from the Location header.
	// It returns false when the server rejects the client with 422.
	Create(ctx context.Context, client *Client) (bool, error)
	// Get returns the client with the given id, or nil when it does not exist.
	Get(ctx context.Context, id int) (*Client, error)
	// GetByExternalID looks up a client by external id, or returns nil.
	GetByExternalID(ctx context.Context, externalID string) (*Client, error)
	// Update sends every attribute of the client. It returns false on 422.
	Update(ctx context.Context, client *Client) (bool, error)
	// UpdateCustomField sets custom field values on a client. It returns
	// false on 422.
	UpdateCustomField(ctx context.Context, client Ref, values map[string]any) (bool, error)
	// Delete removes the client. It returns false when the server refuses
	// with 409.
	Delete(ctx context.Context, client Ref) (bool, error)
}

// ContactsClient manages the contacts of a client. Where a client Ref is
// optional, an empty Ref falls back to the contact's client_id.
type ContactsClient interface {
	ListFor(ctx context.Context, client Ref) ([]*Contact, error)
	Create(ctx context.Context, contact *Contact, client Ref) (bool, error)
	Get(ctx context.Context, id int, client Ref) (*Contact, error)
	Delete(ctx context.Context, contact Ref, client Ref) (bool, error)
	Find(ctx context.Context, clientExternalID, email string) (*Contact, error)
	GetDetails(ctx context.Context, id int, client Ref) (*Contact, error)
	UpdateDetails(ctx context.Context, contact *Contact, client Ref) (bool, error)
	CreateDetailed(ctx context.Context, contact *Contact, client Ref) (bool, error)
}

// CustomFieldsClient reads custom field definitions.
type CustomFieldsClient interface {
	ListContactFields(ctx context.Context) ([]*CustomField, error)
}

// API is the ClientSuccess Open API client.
type API interface {
	Clients() ClientsClient
	Contacts() ContactsClient
	CustomFields() CustomFieldsClient

	// Token returns the cached access token, acquiring one on first use.
	Token(ctx context.Context) (string, error)
	// InvalidateToken drops the cached token so the next request
	// authenticates again.
	InvalidateToken()
}

// UsageAPI records product usage events.
type UsageAPI interface {
	// AddEvent records value occurrences of eventID for user within org.
	// A value of zero records one occurrence and a negative value fails with
	// ErrInvalidEventValue. It returns false when the collector rejects the
	// event with 422.
	AddEvent(ctx context.Context, eventID string, org *Client, user *Contact, value int) (bool, error)
}

// Config represents configuration for the Open API client.
//
// Email and Password are exchanged for an access token on the first request.
// The token is cached for the lifetime of the client and is not refreshed;
// call API.InvalidateToken after a 401 to authenticate again.
type Config struct {
	// Email and Password are the API user credentials.
	Email    string `json:"email"`
	Password string `json:"password"`

	// URL overrides the API base URL. Defaults to DefaultAPIURL.
	URL string `json:"url"`

	// HTTPTimeout bounds each request. Defaults to 30 seconds. Callers
	// should prefer deadlines on the context.
	HTTPTimeout time.Duration `json:"http_timeout"`
	// UserAgent overrides the User-Agent header.
	UserAgent string `json:"user_agent"`
	// Debug logs every request and response at debug level.
	Debug bool `json:"debug"`
	// Logger receives transport logs. Nil discards them.
	Logger hclog.Logger `json:"-"`

	// RequestInterceptors and ResponseInterceptors run around every call.
	RequestInterceptors  []RequestInterceptor  `json:"-"`
	ResponseInterceptors []ResponseInterceptor `json:"-"`
}

// Validate checks the configuration. A missing credential wraps
// ErrMissingRequiredConfig; a malformed URL wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.URL, is.URL),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Duration(0))),
	)

	return classifyValidation(err)
}

// UsageConfig represents configuration for the Usage API client.
type UsageConfig struct {
	ProjectID string `json:"project_id"`
	APIKey    string `json:"api_key"`

	// APIVersion is the collector version. Defaults to DefaultUsageAPIVersion.
	APIVersion string `json:"api_version"`
	// URL overrides the Usage API base URL. Defaults to DefaultUsageURL.
	URL string `json:"url"`

	HTTPTimeout time.Duration `json:"http_timeout"`
	UserAgent   string        `json:"user_agent"`
	Debug       bool          `json:"debug"`
	Logger      hclog.Logger  `json:"-"`
}

// Validate checks the configuration.
func (c *UsageConfig) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ProjectID, validation.Required),
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.URL, is.URL),
	)

	return classifyValidation(err)
}

func classifyValidation(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for _, fieldErr := range fieldErrs {
		var vErr validation.Error
		if errors.As(fieldErr, &vErr) && vErr.Code() == validation.ErrRequired.Code() {
			return fmt.Errorf("%w: %w", ErrMissingRequiredConfig, err)
		}
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
