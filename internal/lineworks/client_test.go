package lineworks

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoike/shiftworks-backend/config"
)

func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
}

type apiServer struct {
	*httptest.Server
	tokenCalls int
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	s := &apiServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		s.tokenCalls++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", r.Form.Get("grant_type"))
		assert.NotEmpty(t, r.Form.Get("assertion"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "expires_in": "3600"})
	})

	mux.HandleFunc("/v1.0/users/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		userID := strings.TrimPrefix(r.URL.Path, "/v1.0/users/")
		json.NewEncoder(w).Encode(map[string]string{"userId": userID, "displayName": "山田太郎"})
	})

	mux.HandleFunc("/dom-1/conversation/v1/spaces/space-1/messages", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "2025-04-20T00:00:00.000Z", r.URL.Query().Get("startTime"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]string{
				{"body": "名前：山田太郎\n1日 09:00 18:00"},
				{"body": "了解です"},
			},
		})
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newTestClient(t *testing.T, s *apiServer) *Client {
	c := NewClient(&config.Config{
		LWClientID:       "client-id",
		LWServiceAccount: "sa@example",
		LWDomainID:       "dom-1",
		LWPrivateKey:     testPrivateKeyPEM(t),
		LWChatID:         "space-1",
		LWAPIServer:      s.URL,
		LWTokenURL:       s.URL + "/oauth2/token",
	})
	return c
}

func TestAccessTokenIsCachedUntilExpiry(t *testing.T) {
	s := newAPIServer(t)
	c := newTestClient(t, s)

	now := time.Date(2025, time.May, 3, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	tok, err := c.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	_, err = c.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, 1, s.tokenCalls, "second call reuses the cached token")

	now = now.Add(2 * time.Hour)
	_, err = c.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, 2, s.tokenCalls, "expired token is refreshed")
}

func TestUserProfile(t *testing.T) {
	s := newAPIServer(t)
	c := newTestClient(t, s)

	profile, err := c.UserProfile("u-123")
	require.NoError(t, err)
	assert.Equal(t, "u-123", profile.UserID)
	assert.Equal(t, "山田太郎", profile.DisplayName)
}

func TestMessages(t *testing.T) {
	s := newAPIServer(t)
	c := newTestClient(t, s)

	from := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.May, 5, 23, 59, 59, 0, time.UTC)

	msgs, err := c.Messages("space-1", from, to)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Body, "名前：山田太郎")
}

func TestUpstreamFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(&config.Config{
		LWClientID:       "client-id",
		LWServiceAccount: "sa@example",
		LWDomainID:       "dom-1",
		LWPrivateKey:     testPrivateKeyPEM(t),
		LWAPIServer:      srv.URL,
		LWTokenURL:       srv.URL + "/oauth2/token",
	})

	_, err := c.AccessToken()
	assert.Error(t, err)
}
