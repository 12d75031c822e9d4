// Package http is the authenticated transport shared by the Open API and
// Usage API clients. It builds requests, attaches the access token, validates
// the status code and parses the body.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// TokenProvider supplies the value of the Authorization header.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// Client is an HTTP client bound to one base URL.
type Client struct {
	baseURL       string
	pathPrefix    string
	tokenProvider TokenProvider
	httpClient    *retryablehttp.Client
	logger        hclog.Logger
	debug         bool
	userAgent     string
	interceptors  *clientsuccess.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithPathPrefix prepends prefix (for example "/v1") to every request path.
func WithPathPrefix(prefix string) Option {
	return func(c *Client) {
		c.pathPrefix = "/" + strings.Trim(prefix, "/")
		if c.pathPrefix == "/" {
			c.pathPrefix = ""
		}
	}
}

// WithLogger sets the logger. It is also handed to the underlying
// retryablehttp client.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug logs every request and response at debug level.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *clientsuccess.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a client for baseURL. A nil tokenProvider sends requests
// without an Authorization header.
func NewClient(baseURL string, tokenProvider TokenProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		tokenProvider: tokenProvider,
		httpClient:    retryClient,
		logger:        hclog.NewNullLogger(),
		userAgent:     constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.Logger = transportLogger{Logger: client.logger.Named("transport")}

	return client
}

// transportLogger forwards retryablehttp warnings and errors. Its debug lines
// print the unmasked request URL and are dropped.
type transportLogger struct {
	hclog.Logger
}

func (transportLogger) Debug(string, ...any) {}

// noRetry hands every outcome back to the caller unchanged.
func noRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// Request describes one API call. Body is JSON-encoded unless it is already
// a []byte; Form takes precedence over Body and is sent form-encoded.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Form    url.Values
	Headers map[string]string
	// Unauthenticated skips the Authorization header.
	Unauthenticated bool
}

// Response is a validated and parsed API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// Data is the parsed body: []byte for PDF documents, otherwise the
	// decoded JSON value, an empty object for an empty body, or "" when the
	// body is not valid JSON.
	Data any
}

// Object returns Data as a JSON object.
func (r *Response) Object() (map[string]any, bool) {
	obj, ok := r.Data.(map[string]any)

	return obj, ok
}

// Array returns Data as a JSON array.
func (r *Response) Array() ([]any, bool) {
	arr, ok := r.Data.([]any)

	return arr, ok
}

// Location returns the Location header.
func (r *Response) Location() string {
	return r.Headers.Get("Location")
}

// Do sends req. A status of 400 or above returns the response together with
// a *clientsuccess.APIError; the body is parsed only for successful calls.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullPath := c.pathPrefix + req.Path

	endpoint, err := url.Parse(c.baseURL + fullPath)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	if len(req.Query) > 0 {
		query := endpoint.Query()
		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}

		endpoint.RawQuery = query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	headers := make(http.Header)
	headers.Set("Accept", constants.ContentTypeJSON)
	headers.Set("User-Agent", c.userAgent)

	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	if c.tokenProvider != nil && !req.Unauthenticated {
		token, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting auth token: %w", err)
		}

		headers.Set("Authorization", token)
	}

	intercepted := &clientsuccess.Request{Method: req.Method, Path: fullPath, Headers: headers, Body: body}
	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	var reqBody any
	if len(intercepted.Body) > 0 {
		reqBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, endpoint.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	requestURI := redactURI(endpoint)

	if c.debug {
		c.logger.Debug("HTTP Request", "method", req.Method, "url", requestURI)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.afterResponse(ctx, intercepted, &clientsuccess.Response{Error: err})

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug {
		c.logger.Debug("HTTP Response", "method", req.Method, "url", requestURI,
			"status", httpResp.StatusCode, "bytes", len(respBody))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	var apiErr error
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr = clientsuccess.NewAPIError(resp.StatusCode, requestURI, respBody)
	}

	c.afterResponse(ctx, intercepted, &clientsuccess.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       respBody,
		Error:      apiErr,
	})

	if apiErr != nil {
		return resp, apiErr
	}

	resp.Data = ParseBody(resp.Headers.Get("Content-Type"), respBody)

	return resp, nil
}

func (c *Client) afterResponse(ctx context.Context, req *clientsuccess.Request, resp *clientsuccess.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		c.logger.Warn("response interceptor failed", "path", req.Path, "error", err)
	}
}

func encodeBody(req *Request) ([]byte, string, error) {
	if req.Form != nil {
		return []byte(req.Form.Encode()), constants.ContentTypeForm, nil
	}

	switch body := req.Body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return body, constants.ContentTypeJSON, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("marshaling request body: %w", err)
		}

		return data, constants.ContentTypeJSON, nil
	}
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch sends a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete sends a DELETE request without a body.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// PostForm sends a form-encoded POST without authentication.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Form: form, Unauthenticated: true})
}

// redactURI masks the api_key query parameter so it never reaches logs or
// error messages.
func redactURI(u *url.URL) string {
	query := u.Query()
	if !query.Has("api_key") {
		return u.String()
	}

	query.Set("api_key", constants.MaskedSecret)

	masked := *u
	masked.RawQuery = query.Encode()

	return masked.String()
}

// ParseBody decodes a successful response body.
func ParseBody(contentType string, body []byte) any {
	if isPDF(contentType) {
		return body
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}
	}

	if !json.Valid(body) {
		return ""
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var value any

	err := decoder.Decode(&value)
	if err != nil {
		return ""
	}

	return value
}

func isPDF(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")

	return strings.EqualFold(strings.TrimSpace(mediaType), constants.ContentTypePDF)
}
