package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cast"
	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
	cshttp "github.com/fivetwenty-io/clientsuccess/internal/http"
)

var ErrTokenRequestFailed = errors.New("token request failed")

// PasswordTokenManager exchanges an email and password for an access token on
// first use and caches it. Concurrent callers share a single acquisition.
type PasswordTokenManager struct {
	httpClient *cshttp.Client
	email      string
	password   string
	logger     hclog.Logger

	mu         sync.Mutex
	token      *Token
	generation uint64
	group      singleflight.Group
}

// NewPasswordTokenManager creates a manager that posts credentials through
// httpClient. The client must be bound to the versioned API base.
func NewPasswordTokenManager(httpClient *cshttp.Client, email, password string, logger hclog.Logger) *PasswordTokenManager {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &PasswordTokenManager{
		httpClient: httpClient,
		email:      email,
		password:   password,
		logger:     logger,
	}
}

// GetToken returns the cached token or acquires a new one. A failed
// acquisition leaves no token cached, so the next call tries again.
func (m *PasswordTokenManager) GetToken(ctx context.Context) (string, error) {
	if token, ok := m.cached(); ok {
		return token, nil
	}

	value, err, _ := m.group.Do("token", func() (any, error) {
		if token, ok := m.cached(); ok {
			return token, nil
		}

		generation := m.currentGeneration()

		token, err := m.fetch(ctx)
		if err != nil {
			return "", err
		}

		m.store(token, generation)

		return token.AccessToken, nil
	})
	if err != nil {
		return "", err
	}

	token, _ := value.(string)

	return token, nil
}

// Invalidate drops the cached token. An acquisition already in flight is not
// cached.
func (m *PasswordTokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = nil
	m.generation++
}

// Token returns the cached token, if any.
func (m *PasswordTokenManager) Token() *Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil {
		return nil
	}

	token := *m.token

	return &token
}

func (m *PasswordTokenManager) cached() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil {
		return "", false
	}

	return m.token.AccessToken, true
}

func (m *PasswordTokenManager) currentGeneration() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.generation
}

func (m *PasswordTokenManager) store(token *Token, generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.generation {
		return
	}

	m.token = token
}

func (m *PasswordTokenManager) fetch(ctx context.Context) (*Token, error) {
	m.logger.Debug("requesting access token", "email", m.email)

	resp, err := m.httpClient.PostForm(ctx, constants.AuthPath, url.Values{
		"username": {m.email},
		"password": {m.password},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenRequestFailed, err)
	}

	// A response without access_token yields an empty token, which is cached
	// like any other.
	var accessToken string
	if body, ok := resp.Object(); ok {
		accessToken = cast.ToString(body["access_token"])
	}

	return &Token{AccessToken: accessToken, ObtainedAt: time.Now()}, nil
}
