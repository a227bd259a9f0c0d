package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adagio/visitor-lookup/internal/domain"
)

func newFakeVault(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/secret/data/api-tokens" || r.Header.Get("X-Vault-Token") != "root" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVaultSourceFetch(t *testing.T) {
	srv := newFakeVault(t, http.StatusOK, `{"data":{"data":{"t1":"abc123","t2":"def456"},"metadata":{"version":3}}}`)

	src, err := NewVaultSource(VaultConfig{Address: srv.URL, Token: "root", Mount: "secret", SecretName: "api-tokens"})
	require.NoError(t, err)

	tokens, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TokenSet{"t1": "abc123", "t2": "def456"}, tokens)
	assert.Equal(t, "vault", src.Name())
}

func TestVaultSourcePermissionDenied(t *testing.T) {
	srv := newFakeVault(t, http.StatusOK, `{}`)

	src, err := NewVaultSource(VaultConfig{Address: srv.URL, Token: "wrong", Mount: "secret", SecretName: "api-tokens"})
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestVaultSourceUnexpectedPayload(t *testing.T) {
	srv := newFakeVault(t, http.StatusOK, `{"data":{"t1":"abc123"}}`)

	src, err := NewVaultSource(VaultConfig{Address: srv.URL, Token: "root", Mount: "/secret/", SecretName: "api-tokens"})
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	assert.Error(t, err)
}
