package miniserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/nerrad567/loxwatch/internal/infrastructure/config"
)

// Miniserver HTTP endpoints.
const (
	// structurePath serves the full structure document (LoxAPP3.json).
	structurePath = "/data/LoxAPP3.json"

	// statePathFormat serves the live value of one control by UUID.
	statePathFormat = "/jdev/sps/io/%s/state"
)

// Default timeouts, used when the config leaves them unset.
const (
	defaultStructureTimeout = 30 * time.Second
	defaultStateTimeout     = 5 * time.Second
)

// maxResponseBytes bounds reply bodies. Structure documents on large sites
// run to a few megabytes; state replies are tiny.
const maxResponseBytes = 32 << 20

// Client talks HTTP to a miniserver using basic authentication.
//
// It provides the two capabilities the rest of the system depends on: the
// structure (inventory) download and single-control live-state reads. The
// state read satisfies the monitor's StateFetcher contract.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	baseURL  string
	username string
	password string

	// Separate HTTP clients: the structure download is one large, rare
	// request; state reads are small and must fail fast so a stuck read
	// cannot stall a whole sampling pass.
	structureClient *http.Client
	stateClient     *http.Client
}

// New creates a miniserver client from configuration.
//
// Parameters:
//   - cfg: Miniserver connection settings from config.yaml
//
// Returns:
//   - *Client: Ready to use; no connection is made until the first request
func New(cfg config.MiniserverConfig) *Client {
	structureTimeout := cfg.GetStructureTimeout()
	if structureTimeout <= 0 {
		structureTimeout = defaultStructureTimeout
	}
	stateTimeout := cfg.GetStateTimeout()
	if stateTimeout <= 0 {
		stateTimeout = defaultStateTimeout
	}

	return &Client{
		baseURL:         cfg.BaseURL(),
		username:        cfg.Username,
		password:        cfg.Password,
		structureClient: &http.Client{Timeout: structureTimeout},
		stateClient:     &http.Client{Timeout: stateTimeout},
	}
}

// FetchStructure downloads the raw structure document.
//
// The bytes are returned undecoded; parsing (including envelope detection)
// belongs to the inventory package.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - []byte: Raw structure JSON
//   - error: ErrAuthentication on credential rejection, ErrUnreachable on
//     transport failure, ErrRequestFailed on other HTTP errors
func (c *Client) FetchStructure(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, c.structureClient, c.baseURL+structurePath)
	if err != nil {
		return nil, fmt.Errorf("fetching structure: %w", err)
	}
	return body, nil
}

// FetchState reads the current value of one control.
//
// The reply is a small JSON document; depending on firmware it nests the
// value inside the "LL" envelope ({"LL": {"value": ...}}) or carries it at
// the top level. Numeric values are formatted in their shortest decimal
// form; strings are returned verbatim.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - controlID: The control's UUID from the structure document
//
// Returns:
//   - string: Current state value
//   - error: ErrStateUnavailable when the reply carries no value, plus the
//     transport errors documented on FetchStructure
func (c *Client) FetchState(ctx context.Context, controlID string) (string, error) {
	url := c.baseURL + fmt.Sprintf(statePathFormat, controlID)
	body, err := c.get(ctx, c.stateClient, url)
	if err != nil {
		return "", fmt.Errorf("fetching state for %s: %w", controlID, err)
	}

	value, ok := extractValue(body)
	if !ok {
		return "", fmt.Errorf("%w: control %s", ErrStateUnavailable, controlID)
	}
	return value, nil
}

// HealthCheck verifies the miniserver answers authenticated requests.
//
// It reads the state endpoint with an empty UUID, which any firmware
// answers cheaply (with an error payload, which is fine: only transport and
// authentication are being verified here).
func (c *Client) HealthCheck(ctx context.Context) error {
	url := c.baseURL + fmt.Sprintf(statePathFormat, "")
	if _, err := c.get(ctx, c.stateClient, url); err != nil {
		// A 4xx other than 401 still proves the server is up and the
		// credentials are accepted.
		if errors.Is(err, ErrAuthentication) || errors.Is(err, ErrUnreachable) {
			return fmt.Errorf("miniserver health check: %w", err)
		}
	}
	return nil
}

// get performs one authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, httpClient *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrUnreachable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuthentication
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// extractValue pulls the state value out of a state reply, handling both
// the enveloped and flat layouts.
func extractValue(body []byte) (string, bool) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", false
	}

	payload := doc
	if inner, ok := doc["LL"].(map[string]any); ok {
		payload = inner
	}

	raw, ok := payload["value"]
	if !ok {
		return "", false
	}

	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
