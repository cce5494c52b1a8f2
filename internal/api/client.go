// Package api builds and issues HTTP requests against the contacts backend,
// attaching auth headers and normalizing responses into Envelopes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"cbook/internal/credstore"
)

// Request describes a single call. Ephemeral, constructed per call.
type Request struct {
	Method      string
	Path        string     // joined to the client's base URL
	Query       url.Values // optional; encoded onto the URL
	ContentType string     // optional; set when Body is non-nil
	Body        io.Reader  // optional
}

// Client issues requests against one backend. Safe for concurrent use.
//
// The bearer header is attached whenever the credential store holds a
// non-empty access token, and never otherwise. Accept: application/json is
// always requested. No timeout is imposed here; cancellation comes from the
// caller's context.
type Client struct {
	base  string
	creds credstore.Store

	// HTTPClient overrides the transport. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// DebugWriter, when non-nil, receives one line per request.
	DebugWriter io.Writer
}

// New creates a client for the given base URL and credential store.
func New(baseURL string, creds credstore.Store) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		creds: creds,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.base }

// Do issues the request and normalizes the response.
//
// A non-nil error means the request never produced an HTTP response
// (transport failure: DNS, refused connection, cancelled context). Any
// HTTP status, success or not, produces a nil error and a populated
// Envelope. Callers must check Envelope.OK, not the error, for
// application-level failures.
func (c *Client) Do(ctx context.Context, r Request) (Envelope, error) {
	u := c.base + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, r.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	if access := c.creds.Get(credstore.Access); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.debugf("%s %s: %v", r.Method, u, err)
		return Envelope{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("read response: %w", err)
	}
	c.debugf("%s %s: %d (%d bytes)", r.Method, u, resp.StatusCode, len(raw))

	env := Envelope{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		raw:    raw,
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		env.isJSON = true
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &env.Data); err != nil {
				return Envelope{}, fmt.Errorf("malformed json response (status %d): %w", resp.StatusCode, err)
			}
		}
	} else {
		env.Data = string(raw)
	}
	return env, nil
}

// Get issues a GET with an optional query string.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (Envelope, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (Envelope, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Post issues a bodyless POST with an optional query string.
func (c *Client) Post(ctx context.Context, path string, query url.Values) (Envelope, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Query: query})
}

// PostJSON issues a POST with a JSON-encoded body.
func (c *Client) PostJSON(ctx context.Context, path string, v any) (Envelope, error) {
	return c.sendJSON(ctx, http.MethodPost, path, v)
}

// PutJSON issues a PUT with a JSON-encoded body.
func (c *Client) PutJSON(ctx context.Context, path string, v any) (Envelope, error) {
	return c.sendJSON(ctx, http.MethodPut, path, v)
}

// PostForm issues a POST with a form-urlencoded body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (Envelope, error) {
	return c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		ContentType: "application/x-www-form-urlencoded",
		Body:        strings.NewReader(form.Encode()),
	})
}

// PostMultipart issues a POST with a single file part under the given field
// name. The file content is buffered in memory; avatar uploads are small.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, content io.Reader) (Envelope, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return Envelope{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return Envelope{}, fmt.Errorf("build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Envelope{}, fmt.Errorf("build multipart body: %w", err)
	}
	return c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		ContentType: mw.FormDataContentType(),
		Body:        &buf,
	})
}

func (c *Client) sendJSON(ctx context.Context, method, path string, v any) (Envelope, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode request body: %w", err)
	}
	return c.Do(ctx, Request{
		Method:      method,
		Path:        path,
		ContentType: "application/json",
		Body:        bytes.NewReader(body),
	})
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) debugf(format string, args ...any) {
	if c.DebugWriter != nil {
		fmt.Fprintf(c.DebugWriter, "api: "+format+"\n", args...)
	}
}
