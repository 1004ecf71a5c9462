package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultQRServerBaseURL = "https://api.qrserver.com"

// QRServerProvider implements QRRenderer against the goqr.me HTTP API.
type QRServerProvider struct {
	baseURL    string
	size       string
	httpClient *http.Client
}

// NewQRServerProvider creates a QRServerProvider. An empty baseURL selects
// the public goqr.me endpoint.
func NewQRServerProvider(baseURL string) *QRServerProvider {
	if baseURL == "" {
		baseURL = defaultQRServerBaseURL
	}
	return &QRServerProvider{
		baseURL: baseURL,
		size:    "300x300",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Render requests a PNG QR code for the payload and returns the raw bytes.
func (p *QRServerProvider) Render(ctx context.Context, payload string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/v1/create-qr-code/?size=%s&format=png&data=%s",
		p.baseURL, p.size, url.QueryEscape(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build qr request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qr render request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("qr render failed with status %d: %s", resp.StatusCode, string(body))
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read qr image: %w", err)
	}
	return image, nil
}
