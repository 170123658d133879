package launch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-launcher/lodestone/core"
)

func msaSession() *core.Session {
	return &core.Session{
		Kind:        core.AccountMicrosoft,
		DisplayName: "Steve",
		UUID:        "069a79f444e94726a5befca90e38aaf5",
		AccessToken: "token-abc",
		Xuid:        "2535412345678901",
	}
}

func TestFetchToken(t *testing.T) {
	var issued issueRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/handshake":
			assert.Equal(t, http.MethodGet, r.Method)
			_ = json.NewEncoder(w).Encode(handshakeResponse{Challenge: "nonce-1"})
		case "/v1/issue":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&issued))
			_ = json.NewEncoder(w).Encode(issueResponse{JoinToken: "jt-xyz"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	token, err := NewJoinClient(srv.URL).FetchToken(context.Background(), msaSession())
	require.NoError(t, err)
	assert.Equal(t, "jt-xyz", token)

	assert.Equal(t, "nonce-1", issued.Challenge)
	assert.Equal(t, "069a79f4-44e9-4726-a5be-fca90e38aaf5", issued.UUID)
	assert.Equal(t, "Steve", issued.Name)
	assert.Equal(t, "msa", issued.UserType)
	assert.Equal(t, "2535412345678901", issued.Xuid)
	assert.Equal(t, "token-abc", issued.AccessToken)
}

func TestFetchTokenOfflineOmitsCredentials(t *testing.T) {
	var raw map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/handshake":
			_ = json.NewEncoder(w).Encode(handshakeResponse{Challenge: "nonce-2"})
		case "/v1/issue":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			_ = json.NewEncoder(w).Encode(issueResponse{JoinToken: "jt-off"})
		}
	}))
	defer srv.Close()

	session := &core.Session{
		Kind:        core.AccountOffline,
		DisplayName: "Notch",
		UUID:        "b50ad385829d3141a2167e7d7539ba7f",
	}
	token, err := NewJoinClient(srv.URL).FetchToken(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, "jt-off", token)

	assert.Equal(t, "legacy", raw["userType"])
	assert.NotContains(t, raw, "xuid")
	assert.NotContains(t, raw, "accessToken")
}

func TestFetchTokenHandshakeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewJoinClient(srv.URL).FetchToken(context.Background(), msaSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "join token handshake")
}

func TestFetchTokenEmptyChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(handshakeResponse{})
	}))
	defer srv.Close()

	_, err := NewJoinClient(srv.URL).FetchToken(context.Background(), msaSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no challenge")
}

func TestFetchTokenIssueRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/handshake":
			_ = json.NewEncoder(w).Encode(handshakeResponse{Challenge: "nonce-3"})
		default:
			http.Error(w, "forbidden", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	_, err := NewJoinClient(srv.URL).FetchToken(context.Background(), msaSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "join token issue")
	assert.Contains(t, err.Error(), "403")
}

func TestFetchTokenEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/handshake":
			_ = json.NewEncoder(w).Encode(handshakeResponse{Challenge: "nonce-4"})
		case "/v1/issue":
			_ = json.NewEncoder(w).Encode(issueResponse{})
		}
	}))
	defer srv.Close()

	_, err := NewJoinClient(srv.URL).FetchToken(context.Background(), msaSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no join token")
}
