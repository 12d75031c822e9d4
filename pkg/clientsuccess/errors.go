package clientsuccess

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a non-success HTTP response.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindPaymentRequired
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindConflict
	KindUnprocessableEntity
	KindInternalServerError
	KindBadGateway
	KindServiceUnavailable
)

// Sentinel errors, one per kind. *APIError unwraps to the sentinel of its kind.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPaymentRequired     = errors.New("payment required")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrMethodNotAllowed    = errors.New("method not allowed")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessableEntity = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrUnknown             = errors.New("unknown API error")
)

// Static errors for argument and configuration problems.
var (
	ErrMissingRequiredConfig = errors.New("missing required configuration")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrConfigRequired        = errors.New("config is required")
	ErrMissingID             = errors.New("resource has no id")
	ErrMissingClientID       = errors.New("client id is required")
	ErrContactHasID          = errors.New("cannot create a contact that already has an id")
	ErrInvalidLocation       = errors.New("invalid location header")
	ErrMissingIdentity       = errors.New("organization and user are required")
	ErrInvalidEventValue     = errors.New("event value must not be negative")
	ErrNilResource           = errors.New("resource is required")
	ErrUnexpectedResponse    = errors.New("unexpected response body")
)

var statusKinds = map[int]ErrorKind{
	http.StatusBadRequest:          KindBadRequest,
	http.StatusUnauthorized:        KindUnauthorized,
	http.StatusPaymentRequired:     KindPaymentRequired,
	http.StatusForbidden:           KindForbidden,
	http.StatusNotFound:            KindNotFound,
	http.StatusMethodNotAllowed:    KindMethodNotAllowed,
	http.StatusConflict:            KindConflict,
	http.StatusUnprocessableEntity: KindUnprocessableEntity,
	http.StatusInternalServerError: KindInternalServerError,
	http.StatusBadGateway:          KindBadGateway,
	http.StatusServiceUnavailable:  KindServiceUnavailable,
}

var kindSentinels = map[ErrorKind]error{
	KindUnknown:             ErrUnknown,
	KindBadRequest:          ErrBadRequest,
	KindUnauthorized:        ErrUnauthorized,
	KindPaymentRequired:     ErrPaymentRequired,
	KindForbidden:           ErrForbidden,
	KindNotFound:            ErrNotFound,
	KindMethodNotAllowed:    ErrMethodNotAllowed,
	KindConflict:            ErrConflict,
	KindUnprocessableEntity: ErrUnprocessableEntity,
	KindInternalServerError: ErrInternalServerError,
	KindBadGateway:          ErrBadGateway,
	KindServiceUnavailable:  ErrServiceUnavailable,
}

// KindForStatus maps an HTTP status code to its kind. Codes outside the
// table classify as KindUnknown.
func KindForStatus(status int) ErrorKind {
	if kind, ok := statusKinds[status]; ok {
		return kind
	}

	return KindUnknown
}

// String returns the sentinel message of the kind.
func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

func (k ErrorKind) sentinel() error {
	if err, ok := kindSentinels[k]; ok {
		return err
	}

	return ErrUnknown
}

// APIError is returned for every response with status >= 400.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	RequestURI string
	Body       string
}

// NewAPIError classifies a failed response.
func NewAPIError(statusCode int, requestURI string, body []byte) *APIError {
	return &APIError{
		Kind:       KindForStatus(statusCode),
		StatusCode: statusCode,
		RequestURI: requestURI,
		Body:       string(body),
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("server responded with code %d\nrequest URI: %s\nmessage: %s",
		e.StatusCode, e.RequestURI, e.Body)
}

// Unwrap exposes the kind sentinel to errors.Is.
func (e *APIError) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the kind of an *APIError in err's chain, or KindUnknown and
// false if there is none.
func KindOf(err error) (ErrorKind, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}

	return KindUnknown, false
}

// IsBadRequest checks if the error is a 400 response.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a 409 response.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnprocessableEntity checks if the error is a 422 response.
func IsUnprocessableEntity(err error) bool {
	return errors.Is(err, ErrUnprocessableEntity)
}

// IsServiceUnavailable checks if the error is a 503 response, usually
// scheduled maintenance.
func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}
