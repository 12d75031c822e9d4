package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials     = errors.New("no credentials configured, use 'clientsuccess login' or set CLIENTSUCCESS_EMAIL and CLIENTSUCCESS_PASSWORD")
	ErrNoUsageConfigured = errors.New("usage API not configured, set usage.project_id and usage.api_key")
)

// Validation errors.
var (
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidFieldFormat = errors.New("invalid field format, expected key=value")
	ErrInvalidActive      = errors.New("invalid value for --active")
	ErrUnsupportedFormat  = errors.New("unsupported output format")
)

// Required field errors.
var (
	ErrClientRequired      = errors.New("--client flag is required")
	ErrEmailRequired       = errors.New("--email flag is required")
	ErrExternalIDRequired  = errors.New("--external-id flag is required")
	ErrNameRequired        = errors.New("--name flag is required")
	ErrOrganizationMissing = errors.New("organization client not found")
	ErrUserMissing         = errors.New("user contact not found")
)

// Operation errors.
var (
	ErrCreateRejected = errors.New("the server rejected the resource")
	ErrDeleteRejected = errors.New("the server refused the delete")
	ErrUpdateRejected = errors.New("the server rejected the update")
)
