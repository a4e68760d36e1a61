package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultPayPalBaseURL = "https://api-m.sandbox.paypal.com"

// PayPal order statuses accepted as proof of payment.
const (
	PayPalStatusCompleted = "COMPLETED"
	PayPalStatusApproved  = "APPROVED"
)

// PayPalClient talks to the PayPal REST API to verify checkout orders.
//
// Three modes, chosen by configuration:
//   - Simulate true: callers skip verification entirely and trust the
//     client-supplied confirmation (non-production environments).
//   - No secret configured: relaxed sandbox, verification is skipped.
//   - Otherwise: client credentials are exchanged for an access token and the
//     named order is fetched from the provider.
type PayPalClient struct {
	clientID   string
	secret     string
	baseURL    string
	simulate   bool
	httpClient *http.Client
}

func NewPayPalClient(clientID, secret, baseURL string, simulate bool) *PayPalClient {
	if baseURL == "" {
		baseURL = defaultPayPalBaseURL
	}
	return &PayPalClient{
		clientID: clientID,
		secret:   secret,
		baseURL:  strings.TrimRight(baseURL, "/"),
		simulate: simulate,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Simulated reports whether confirmations are accepted without contacting
// the provider.
func (c *PayPalClient) Simulated() bool {
	return c.simulate
}

// Configured reports whether verified mode is possible at all.
func (c *PayPalClient) Configured() bool {
	return c.secret != ""
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// PayPalOrder is the subset of the provider's order representation we need.
type PayPalOrder struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Raw    json.RawMessage `json:"-"`
}

// Paid reports whether the provider considers the order settled.
func (o *PayPalOrder) Paid() bool {
	return o.Status == PayPalStatusCompleted || o.Status == PayPalStatusApproved
}

// GetOrder exchanges client credentials for an access token and fetches the
// named order from the provider.
func (c *PayPalClient) GetOrder(ctx context.Context, orderID string) (*PayPalOrder, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/checkout/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal order lookup failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paypal order lookup returned status %d: %s", resp.StatusCode, string(body))
	}

	var order PayPalOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("paypal order response malformed: %w", err)
	}
	order.Raw = body
	return &order, nil
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token exchange returned status %d: %s", resp.StatusCode, string(body))
	}

	var tok paypalTokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("paypal token response malformed: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("paypal token response missing access_token")
	}
	return tok.AccessToken, nil
}
