// Package extraction is the HTTP client for the upstream invoice-extraction
// service. The service is an opaque collaborator: it accepts a PDF and
// returns the extracted document as schema-free JSON.
package extraction

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jobin12/invoice-extraction/internal/document"
	"github.com/Jobin12/invoice-extraction/internal/logger"
	"github.com/Jobin12/invoice-extraction/internal/remote"
)

// DefaultBaseURL is the extraction service's default location.
const DefaultBaseURL = "http://localhost:8000"

// Client calls the extraction service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	log zerolog.Logger
}

// NewClient returns a client for the extraction service at baseURL, falling
// back to DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		log:        logger.WithComponent("extraction-client"),
	}
}

// Result is the extraction service's response. RawResponse is the extracted
// document itself; Message and SavedFile are informational.
type Result struct {
	Message     string
	SavedFile   string
	RawResponse document.Value
}

// Extract uploads one file to the extraction endpoint and returns the parsed
// response. A non-2xx status yields a *remote.StatusError carrying the
// server's detail when the body provided one.
func (c *Client) Extract(ctx context.Context, filename string, file io.Reader) (*Result, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading upload file: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	url := c.BaseURL + "/extract"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	c.log.Debug().
		Str("url", url).
		Str("file", filename).
		Msg("Uploading document for extraction")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := remote.ErrorFromResponse(resp)
		c.log.Warn().
			Int("status", statusErr.StatusCode).
			Str("detail", statusErr.Detail).
			Msg("Extraction request rejected")
		return nil, statusErr
	}

	body, err := document.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding extraction response: %w", err)
	}

	result := &Result{
		Message:     body.Get("message").Text(),
		SavedFile:   body.Get("saved_file").Text(),
		RawResponse: body.Get("raw_response"),
	}

	c.log.Info().
		Str("file", filename).
		Str("saved_file", result.SavedFile).
		Msg("Extraction completed")

	return result, nil
}
