// Package zoho is the HTTP client for the bookkeeping integration endpoint,
// which creates an invoice in Zoho Books from an extracted document.
package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jobin12/invoice-extraction/internal/document"
	"github.com/Jobin12/invoice-extraction/internal/logger"
	"github.com/Jobin12/invoice-extraction/internal/remote"
)

// DefaultBaseURL is the integration endpoint's default location.
const DefaultBaseURL = "http://localhost:8000"

// Client calls the invoice-creation endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	log zerolog.Logger
}

// NewClient returns a client for the integration endpoint at baseURL,
// falling back to DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		log:        logger.WithComponent("zoho-client"),
	}
}

type createInvoiceRequest struct {
	CustomerName string         `json:"customer_name"`
	InvoiceData  document.Value `json:"invoice_data"`
}

type createInvoiceResponse struct {
	Invoice struct {
		InvoiceID string `json:"invoice_id"`
	} `json:"invoice"`
}

// CreateInvoice submits one extracted document under the given customer name
// and returns the created invoice's identifier. A non-2xx status yields a
// *remote.StatusError carrying the server's detail when present.
func (c *Client) CreateInvoice(ctx context.Context, customerName string, doc document.Value) (string, error) {
	payload, err := json.Marshal(createInvoiceRequest{
		CustomerName: customerName,
		InvoiceData:  doc,
	})
	if err != nil {
		return "", fmt.Errorf("encoding create-invoice request: %w", err)
	}

	url := c.BaseURL + "/zoho/create-invoice"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().
		Str("url", url).
		Str("customer", customerName).
		Msg("Creating invoice in Zoho Books")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create-invoice request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := remote.ErrorFromResponse(resp)
		c.log.Warn().
			Int("status", statusErr.StatusCode).
			Str("detail", statusErr.Detail).
			Msg("Create-invoice request rejected")
		return "", statusErr
	}

	var out createInvoiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding create-invoice response: %w", err)
	}
	if out.Invoice.InvoiceID == "" {
		return "", fmt.Errorf("create-invoice response missing invoice_id")
	}

	c.log.Info().
		Str("invoice_id", out.Invoice.InvoiceID).
		Msg("Invoice created in Zoho Books")

	return out.Invoice.InvoiceID, nil
}
