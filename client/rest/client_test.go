package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tenantops/offboarder/client/config"
)

func testServerClient(t *testing.T, handler http.HandlerFunc) (RestClient, *int) {
	t.Helper()

	tokenRequests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/test-tenant/oauth2/v2.0/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "testtoken",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewRestClient(server.URL, config.Config{
		ApplicationId: "app-id",
		Authority:     server.URL,
		ClientSecret:  "secret",
		Tenant:        "test-tenant",
	})
	require.NoError(t, err)

	return client, &tokenRequests
}

func TestRestClient_Send(t *testing.T) {
	t.Run("token is fetched once and attached to requests", func(t *testing.T) {
		var seenAuth []string
		client, tokenRequests := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
			seenAuth = append(seenAuth, r.Header.Get("Authorization"))
			w.Write([]byte(`{}`))
		})

		for i := 0; i < 2; i++ {
			res, err := client.Get(context.Background(), "/v1.0/users", nil, nil)
			require.NoError(t, err)
			res.Body.Close()
		}

		require.Equal(t, 1, *tokenRequests)
		require.Equal(t, []string{"Bearer testtoken", "Bearer testtoken"}, seenAuth)
	})

	t.Run("throttled request is retried after the stated delay", func(t *testing.T) {
		attempts := 0
		client, _ := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts == 1 {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{}`))
		})

		res, err := client.Get(context.Background(), "/v1.0/users", nil, nil)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, 2, attempts)
	})

	t.Run("throttled response without a parsable delay is an error", func(t *testing.T) {
		client, _ := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Get(context.Background(), "/v1.0/users", nil, nil)
		require.Error(t, err)
	})

	t.Run("client errors are terminal and typed", func(t *testing.T) {
		attempts := 0
		client, _ := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"code": "Request_ResourceNotFound"},
			})
		})

		_, err := client.Get(context.Background(), "/v1.0/users/nobody", nil, nil)
		require.Error(t, err)
		require.True(t, IsNotFoundErr(err))
		require.Equal(t, 1, attempts)
	})

	t.Run("forbidden is not a not-found", func(t *testing.T) {
		client, _ := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := client.Get(context.Background(), "/v1.0/users", nil, nil)
		require.Error(t, err)
		require.False(t, IsNotFoundErr(err))
	})
}

func TestToken(t *testing.T) {
	t.Run("zero token is expired", func(t *testing.T) {
		require.True(t, Token{}.IsExpired())
	})

	t.Run("fresh token is not expired", func(t *testing.T) {
		token := Token{AccessToken: "x", ExpiresIn: 3600}
		token.setExpiry(time.Now())
		require.False(t, token.IsExpired())
	})

	t.Run("expiry includes the refresh buffer", func(t *testing.T) {
		token := Token{AccessToken: "x", ExpiresIn: 30}
		token.setExpiry(time.Now())
		require.True(t, token.IsExpired())
	})
}
