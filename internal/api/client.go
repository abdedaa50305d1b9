// Package api is the HTTP client for the portal backend.  Everything is
// plain HTTP+JSON (multipart when files are attached) against a fixed base
// URL, with a bearer token attached once the session holds one.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
)

// ErrUnauthorized is returned for 401/403 responses.  The session store
// treats it as "token rejected" and fails closed.
var ErrUnauthorized = fmt.Errorf("unauthorized")

// APIError is any other non-2xx outcome.  Validation payloads are flattened
// into Message as "field: message; field: message", the same single string
// the portal has always shown in its error banner.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// Client talks to one backend.  It is constructed once at application start
// and handed to the state containers; there is no package-level singleton.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	token   string
}

// New builds a client for baseURL (e.g. "http://localhost:8000").  No
// request timeout is installed: in-flight calls are bounded only by the
// caller's context, matching the portal's historical behavior.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
	}
}

// SetToken installs (or clears, with "") the bearer token used for
// subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the currently installed bearer token.
func (c *Client) Token() string { return c.token }

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil).  A nil body sends no payload.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// FilePart is one file attached to a multipart request.
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// doMultipart issues a multipart/form-data request with string fields and
// attached files, decoding a JSON response into out when non-nil.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, files []FilePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return err
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return err
		}
		if _, err := fw.Write(f.Content); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: flattenErrorBody(raw)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// flattenErrorBody turns a backend error payload into one human-readable
// string.  A {"detail": ...} or {"error": ...} body wins; otherwise field
// errors are concatenated as "field: message; field: message" in field
// order.  Anything unparseable falls back to the raw body text.
func flattenErrorBody(raw []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if d, ok := payload["detail"].(string); ok && d != "" {
		return d
	}
	if d, ok := payload["error"].(string); ok && d != "" {
		return d
	}
	fields := make([]string, 0, len(payload))
	for k := range payload {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, k := range fields {
		switch v := payload[k].(type) {
		case string:
			parts = append(parts, k+": "+v)
		case []any:
			msgs := make([]string, 0, len(v))
			for _, m := range v {
				msgs = append(msgs, fmt.Sprint(m))
			}
			parts = append(parts, k+": "+strings.Join(msgs, ", "))
		default:
			parts = append(parts, k+": "+fmt.Sprint(v))
		}
	}
	return strings.Join(parts, "; ")
}
