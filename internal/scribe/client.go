package scribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ragdeck/ragdeck/internal/logtail"
)

// API is the control surface the console drives. It is implemented by
// *Client and substituted by fakes in tests.
type API interface {
	FetchConfig(ctx context.Context) (map[string]any, error)
	SaveConfig(ctx context.Context, cfg map[string]any) error
	OptimizeConfig(ctx context.Context) error
	ListFiles(ctx context.Context) ([]FileEntry, error)
	DeleteFile(ctx context.Context, name string) error
	RebuildFile(ctx context.Context, name string) error
	RebuildAll(ctx context.Context) error
	Upload(ctx context.Context, files []UploadFile, overwrite bool) (UploadResult, error)
	StartService(ctx context.Context) error
	StopService(ctx context.Context) error
	Shutdown(ctx context.Context) error
	FetchStatus(ctx context.Context) (StatusResponse, error)
	FetchLogs(ctx context.Context, limit int) ([]logtail.Record, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the scribe control API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8421"
	defaultUserAgent = "ragdeck/0.1"
	// Uploads and embedding rebuilds can run for a while.
	requestTimeout = 60 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// WSLogsURL derives the push-channel endpoint from the API base URL.
func (c *Client) WSLogsURL() string {
	u := *c.baseURL
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = "/ws/logs"
	return u.String()
}

// FetchConfig retrieves the daemon's runtime configuration.
func (c *Client) FetchConfig(ctx context.Context) (map[string]any, error) {
	var payload ConfigResponse
	if err := c.do(ctx, http.MethodGet, "/api/config", nil, "", &payload); err != nil {
		return nil, err
	}
	if err := payload.check(); err != nil {
		return nil, err
	}
	if payload.Config == nil {
		payload.Config = map[string]any{}
	}
	return payload.Config, nil
}

// SaveConfig writes a full configuration object back to the daemon.
func (c *Client) SaveConfig(ctx context.Context, cfg map[string]any) error {
	body, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	var payload Envelope
	if err := c.do(ctx, http.MethodPost, "/api/config", bytes.NewReader(body), "application/json", &payload); err != nil {
		return err
	}
	return payload.check()
}

// OptimizeConfig asks the daemon to tune its own parameters.
func (c *Client) OptimizeConfig(ctx context.Context) error {
	var payload Envelope
	if err := c.do(ctx, http.MethodGet, "/api/config/optimize", nil, "", &payload); err != nil {
		return err
	}
	return payload.check()
}

// ListFiles retrieves the current document corpus listing.
func (c *Client) ListFiles(ctx context.Context) ([]FileEntry, error) {
	var payload FilesResponse
	if err := c.do(ctx, http.MethodGet, "/api/files", nil, "", &payload); err != nil {
		return nil, err
	}
	if err := payload.check(); err != nil {
		return nil, err
	}
	return payload.Files, nil
}

// DeleteFile removes one document from the corpus.
func (c *Client) DeleteFile(ctx context.Context, name string) error {
	var payload Envelope
	if err := c.do(ctx, http.MethodDelete, "/api/files/"+name, nil, "", &payload); err != nil {
		return err
	}
	return payload.check()
}

// RebuildFile recreates the embeddings for one document.
func (c *Client) RebuildFile(ctx context.Context, name string) error {
	var payload Envelope
	if err := c.do(ctx, http.MethodPost, "/api/files/"+name+"/rebuild", nil, "", &payload); err != nil {
		return err
	}
	return payload.check()
}

// RebuildAll recreates the embeddings for every document.
func (c *Client) RebuildAll(ctx context.Context) error {
	var payload Envelope
	if err := c.do(ctx, http.MethodPost, "/api/files/rebuild-all", nil, "", &payload); err != nil {
		return err
	}
	return payload.check()
}

// Upload sends documents as a multipart form. partial_success is a
// valid outcome: the result carries per-file errors for the caller to
// report.
func (c *Client) Upload(ctx context.Context, files []UploadFile, overwrite bool) (UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return UploadResult{}, fmt.Errorf("build upload form: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return UploadResult{}, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := w.WriteField("overwrite", strconv.FormatBool(overwrite)); err != nil {
		return UploadResult{}, fmt.Errorf("build upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("build upload form: %w", err)
	}

	var payload UploadResult
	if err := c.do(ctx, http.MethodPost, "/api/files/upload", &buf, w.FormDataContentType(), &payload); err != nil {
		return UploadResult{}, err
	}
	if payload.Status != StatusSuccess && payload.Status != StatusPartial {
		return UploadResult{}, &APIError{Status: payload.Status, Message: payload.Message}
	}
	return payload, nil
}

// StartService starts the chat service.
func (c *Client) StartService(ctx context.Context) error {
	var payload Envelope
	if err := c.do(ctx, http.MethodPost, "/api/app/start", nil, "", &payload); err != nil {
		return err
	}
	return payload.check()
}

// StopService stops the chat service.
func (c *Client) StopService(ctx context.Context) error {
	var payload Envelope
	if err := c.do(ctx, http.MethodPost, "/api/app/stop", nil, "", &payload); err != nil {
		return err
	}
	return payload.check()
}

// Shutdown asks the whole backend application to exit.
func (c *Client) Shutdown(ctx context.Context) error {
	var payload Envelope
	if err := c.do(ctx, http.MethodPost, "/api/app/shutdown", nil, "", &payload); err != nil {
		return err
	}
	return payload.check()
}

// FetchStatus retrieves the authoritative service running flag.
func (c *Client) FetchStatus(ctx context.Context) (StatusResponse, error) {
	var payload StatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/app/status", nil, "", &payload); err != nil {
		return StatusResponse{}, err
	}
	return payload, nil
}

// FetchLogs retrieves the most recent backend log lines for seeding
// the log pane before the push channel catches up.
func (c *Client) FetchLogs(ctx context.Context, limit int) ([]logtail.Record, error) {
	rel := &url.URL{Path: "/api/logs"}
	if limit > 0 {
		values := url.Values{}
		values.Set("limit", strconv.Itoa(limit))
		rel.RawQuery = values.Encode()
	}
	var payload LogsResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, "", &payload); err != nil {
		return nil, err
	}
	if err := payload.check(); err != nil {
		return nil, err
	}
	return payload.Logs, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, contentType, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		// Error statuses still carry a JSON envelope with the
		// operator-facing message when the backend produced them.
		var env Envelope
		if json.Unmarshal(raw, &env) == nil && env.Status != "" {
			return &APIError{Status: env.Status, Message: env.Message}
		}
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
