package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumitRND/PresenceBackend/internal/domain/auth"
)

func TestVerifyAcceptsValidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/verify", r.URL.Path)

		var req adVerifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jdoe", req.Username)

		json.NewEncoder(w).Encode(adVerifyResponse{Valid: true})
	}))
	defer server.Close()

	verifier := NewADVerifier(server.URL, 5*time.Second)
	valid, err := verifier.Verify(context.Background(), "jdoe", "pw")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	verifier := NewADVerifier(server.URL, 5*time.Second)
	valid, err := verifier.Verify(context.Background(), "jdoe", "wrong")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	verifier := NewADVerifier(server.URL, 5*time.Second)
	_, err := verifier.Verify(context.Background(), "jdoe", "pw")
	assert.ErrorIs(t, err, auth.ErrADUnavailable)
}

func TestVerifyUnreachableUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	verifier := NewADVerifier(server.URL, time.Second)
	_, err := verifier.Verify(context.Background(), "jdoe", "pw")
	assert.ErrorIs(t, err, auth.ErrADUnavailable)
}
