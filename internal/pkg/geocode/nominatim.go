package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Details holds the reverse-geocoded address fields for a coordinate pair.
// Every field may be nil: lookups are best-effort and failures degrade to an
// empty result instead of an error.
type Details struct {
	LocationAddress *string
	County          *string
	State           *string
	Postcode        *string
}

type Client interface {
	Reverse(ctx context.Context, lat, lon float64) Details
}

type nominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewNominatimClient(baseURL, userAgent string) Client {
	return &nominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		County   string `json:"county"`
		City     string `json:"city"`
		Village  string `json:"village"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// Reverse looks up the address for a coordinate pair. Any failure (network,
// bad status, malformed body) is logged and returns an all-nil Details so a
// geocoding outage never blocks check-in.
func (c *nominatimClient) Reverse(ctx context.Context, lat, lon float64) Details {
	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Error("Geocode: failed to build request", "error", err)
		return Details{}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Geocode: reverse lookup failed", "error", err)
		return Details{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Geocode: unexpected status", "status", resp.StatusCode)
		return Details{}
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Error("Geocode: failed to decode response", "error", err)
		return Details{}
	}

	county := body.Address.County
	if county == "" {
		county = body.Address.City
	}
	if county == "" {
		county = body.Address.Village
	}

	return Details{
		LocationAddress: nonEmpty(body.DisplayName),
		County:          nonEmpty(county),
		State:           nonEmpty(body.Address.State),
		Postcode:        nonEmpty(body.Address.Postcode),
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
