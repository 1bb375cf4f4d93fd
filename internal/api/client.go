// Package api contains typed clients for the outfit-recommendation backend.
// Request bodies are JSON except where multipart upload is required for image
// bytes. Session-scoped calls attach the opaque user identifier as a header.
// Every call is fire-once: no retry, no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/errs"
)

// sessionHeader carries the opaque session identifier on session-scoped calls.
const sessionHeader = "Fitu-User-UUID"

// SessionSource yields the current session identifier, if one exists.
type SessionSource interface {
	SessionID() (string, bool)
}

// Error is a uniform failure for any non-success backend response. The HTTP
// status is always captured so callers can branch on it for user messaging.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.Status, e.Message)
}

// Unwrap maps well-known statuses to sentinels so callers can branch with
// errors.Is without inspecting codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return errs.ErrUnauthorized
	case http.StatusNotFound:
		return errs.ErrNotFound
	}
	return nil
}

// IsStatus reports whether err is a backend *Error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client issues requests against the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	session SessionSource
	log     *zap.Logger
}

// New constructs a Client. The timeout bounds every request; the original UI
// had none and a hung request froze it forever.
func New(baseURL string, timeout time.Duration, session SessionSource, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
		log:     log,
	}
}

// envelope is the single `data` wrapper most endpoints respond with.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// do performs one request and decodes the response into out (may be nil).
// Non-2xx statuses become *Error with the status captured.
func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, scoped bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if scoped {
		id, ok := c.session.SessionID()
		if !ok {
			return fmt.Errorf("%s: %w", op, errs.ErrNoSession)
		}
		req.Header.Set(sessionHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("backend call failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
		)
		return &Error{Op: op, Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := decodePayload(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// decodePayload unwraps the data envelope when present, and otherwise decodes
// the whole body. The body-image analysis endpoint responds without a wrapper.
func decodePayload(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}

// doJSON marshals in as a JSON body and performs the request.
func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any, scoped bool) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, contentType, body, scoped, out)
}

// form accumulates a multipart body.
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

func (f *form) field(name, value string) error {
	return f.w.WriteField(name, value)
}

// file streams the file at path into a form part.
func (f *form) file(name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = src.Close() }()

	part, err := f.w.CreateFormFile(name, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}

func (f *form) close() (contentType string, body io.Reader, err error) {
	if err := f.w.Close(); err != nil {
		return "", nil, err
	}
	return f.w.FormDataContentType(), &f.buf, nil
}

// doForm finalizes the multipart form and performs the request.
func (c *Client) doForm(ctx context.Context, op, method, path string, f *form, out any, scoped bool) error {
	contentType, body, err := f.close()
	if err != nil {
		return fmt.Errorf("%s: build form: %w", op, err)
	}
	return c.do(ctx, op, method, path, contentType, body, scoped, out)
}
