package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/domain/auth"
)

// adVerifier checks credentials against the upstream directory service over
// HTTP. Network failures and 5xx responses surface as ErrADUnavailable so
// the handler can answer 503 instead of rejecting the credentials.
type adVerifier struct {
	baseURL    string
	httpClient *http.Client
}

func NewADVerifier(baseURL string, timeout time.Duration) auth.ADVerifier {
	return &adVerifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type adVerifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adVerifyResponse struct {
	Valid bool `json:"valid"`
}

// Verify implements auth.ADVerifier.
func (v *adVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	body, err := json.Marshal(adVerifyRequest{Username: username, Password: password})
	if err != nil {
		return false, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", auth.ErrADUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var result adVerifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return false, fmt.Errorf("failed to decode verify response: %w", err)
		}
		return result.Valid, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return false, nil
	case resp.StatusCode >= 500:
		return false, fmt.Errorf("%w: upstream returned %d", auth.ErrADUnavailable, resp.StatusCode)
	default:
		return false, fmt.Errorf("unexpected verify response status %d", resp.StatusCode)
	}
}
