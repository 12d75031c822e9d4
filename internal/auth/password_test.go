package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/clientsuccess/internal/auth"
	cshttp "github.com/fivetwenty-io/clientsuccess/internal/http"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

func newAuthServer(t *testing.T, hits *atomic.Int32, handler func(w http.ResponseWriter)) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/v1/auth", request.URL.Path)
		assert.NoError(t, request.ParseForm())
		assert.Equal(t, "me@example.com", request.PostForm.Get("username"))
		assert.Equal(t, "secret", request.PostForm.Get("password"))

		hits.Add(1)
		handler(writer)
	}))
	t.Cleanup(server.Close)

	return server
}

func newManager(serverURL string) *auth.PasswordTokenManager {
	httpClient := cshttp.NewClient(serverURL, nil, cshttp.WithPathPrefix("/v1"))

	return auth.NewPasswordTokenManager(httpClient, "me@example.com", "secret", nil)
}

func TestPasswordTokenManager_AcquiresOnceAndCaches(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := newAuthServer(t, &hits, func(w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"access_token":"tok-1"}`))
	})

	manager := newManager(server.URL)
	assert.Nil(t, manager.Token())

	for i := 0; i < 3; i++ {
		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	}

	assert.Equal(t, int32(1), hits.Load())
	require.NotNil(t, manager.Token())
	assert.False(t, manager.Token().ObtainedAt.IsZero())
}

func TestPasswordTokenManager_MissingAccessToken(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := newAuthServer(t, &hits, func(w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"unexpected":true}`))
	})

	manager := newManager(server.URL)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestPasswordTokenManager_FailureLeavesTokenUnset(t *testing.T) {
	t.Parallel()

	var (
		hits atomic.Int32
		fail atomic.Bool
	)

	fail.Store(true)

	server := newAuthServer(t, &hits, func(w http.ResponseWriter) {
		if fail.Load() {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		_, _ = w.Write([]byte(`{"access_token":"tok-2"}`))
	})

	manager := newManager(server.URL)

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, auth.ErrTokenRequestFailed)
	assert.True(t, clientsuccess.IsUnauthorized(err))
	assert.Nil(t, manager.Token())

	fail.Store(false)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, int32(2), hits.Load())
}

func TestPasswordTokenManager_Invalidate(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := newAuthServer(t, &hits, func(w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"access_token":"tok"}`))
	})

	manager := newManager(server.URL)

	_, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	manager.Invalidate()
	assert.Nil(t, manager.Token())

	_, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestPasswordTokenManager_ConcurrentFirstUse(t *testing.T) {
	t.Parallel()

	const callers = 20

	var hits atomic.Int32

	server := newAuthServer(t, &hits, func(w http.ResponseWriter) {
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(`{"access_token":"shared"}`))
	})

	manager := newManager(server.URL)

	var wg sync.WaitGroup

	tokens := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			tokens[i], errs[i] = manager.GetToken(context.Background())
		}(i)
	}

	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", tokens[i])
	}

	acquisitions := hits.Load()
	assert.GreaterOrEqual(t, acquisitions, int32(1))
	assert.LessOrEqual(t, acquisitions, int32(callers))

	_, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, acquisitions, hits.Load())
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("saved")
	manager.Invalidate()

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "saved", token)
}
