package httpremote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"todopanel/internal/domain"
	"todopanel/internal/ports"
)

const defaultTimeout = 10 * time.Second

// StatusError is an ordinary remote failure: the endpoint exists but
// answered a non-2xx status other than 404.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d", e.Code)
}

// itemsEnvelope is the wire shape on both verbs.
type itemsEnvelope struct {
	Items []domain.Item `json:"items"`
}

// Client implements ports.RemoteStore over the REST contract: GET and
// PUT on <base>/items. A 404 on either verb maps to
// ports.ErrEndpointMissing so the sync layer can treat an uninstalled
// handler differently from a failing one.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.RemoteStore = (*Client)(nil)

// NewClient creates a client for the endpoint at baseURL. httpClient
// may be nil, in which case a client with a sane timeout is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Load fetches the item collection. With includeNotebook false the
// server is asked to filter notebook items out.
func (c *Client) Load(ctx context.Context, includeNotebook bool) ([]domain.Item, error) {
	itemsURL := c.baseURL + "/items"
	if !includeNotebook {
		itemsURL += "?" + url.Values{"include_notebook_todos": {"0"}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, itemsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote read failed: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var envelope itemsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("malformed response body: %w", err)
	}
	return envelope.Items, nil
}

// Store replaces the remote collection with items.
func (c *Client) Store(ctx context.Context, items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}
	payload, err := json.Marshal(itemsEnvelope{Items: items})
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/items", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote write failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return classifyStatus(resp.StatusCode)
}

// classifyStatus maps a response status to the error taxonomy: 2xx is
// success, 404 means the handler is not installed, anything else is an
// ordinary remote error.
func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ports.ErrEndpointMissing
	default:
		return &StatusError{Code: code}
	}
}
