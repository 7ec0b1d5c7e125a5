package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"brain/internal/config"
	"brain/internal/logging"
	"brain/internal/types"
)

const (
	defaultBaseURL   = "http://127.0.0.1:8001"
	defaultNotesPath = "/api/notes"
	defaultTimeout   = 10 * time.Second

	IdentityHeader  = "X-User-ID"
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the notes service. It satisfies notes.Fetcher.
type Client struct {
	baseURL   string
	notesPath string
	http      *http.Client
	logger    logging.Logger
}

func New(cfg config.CoreConfig, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Client{
		baseURL:   cfg.ServiceBaseURL(),
		notesPath: cfg.NotesPath(),
		http: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		logger: logger,
	}
}

func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		notesPath: defaultNotesPath,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logging.Nop(),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListNotes fetches every note visible to identity. The identity is passed
// through untouched as the scoping header.
func (c *Client) ListNotes(ctx context.Context, identity string) ([]types.Note, error) {
	headers := http.Header{}
	headers.Set(IdentityHeader, identity)
	var notes []types.Note
	if err := c.doJSON(ctx, http.MethodGet, c.notesPath, headers, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []types.Note{}
	}
	return notes, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, headers http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	requestID := logging.NewRequestID()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Debug("notes_request_failed",
			logging.F("request_id", requestID),
			logging.F("path", path),
			logging.Err(err),
		)
		return err
	}
	defer resp.Body.Close()
	c.logger.Debug("notes_request",
		logging.F("request_id", requestID),
		logging.F("path", path),
		logging.F("status", resp.StatusCode),
		logging.F("duration", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	var payload errorPayload
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(body, &payload)
	switch {
	case payload.Error != "":
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	case payload.Detail != "":
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Detail}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
