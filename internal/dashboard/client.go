package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Record is one API document in wire shape. The dashboard treats every
// collection uniformly, so records stay untyped maps.
type Record map[string]any

// ID returns the document id, or "" when absent.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Str returns the named field when it is a string.
func (r Record) Str(name string) string {
	s, _ := r[name].(string)
	return s
}

// Bool returns the named field when it is a bool.
func (r Record) Bool(name string) bool {
	b, _ := r[name].(bool)
	return b
}

// APIError is a non-2xx response from the content API.
type APIError struct {
	Status  int
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the content API. The session cookie set by Login is
// carried on every later request through the jar.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	_, err := c.do(ctx, http.MethodPost, "/api/auth/login", body)
	return err
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	return err
}

func (c *Client) List(ctx context.Context, kind Kind) ([]Record, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/"+kind.Path(), nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

func (c *Client) Create(ctx context.Context, kind Kind, payload map[string]any) (Record, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/"+kind.Path(), payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

func (c *Client) Update(ctx context.Context, kind Kind, id string, payload map[string]any) (Record, error) {
	raw, err := c.do(ctx, http.MethodPut, "/api/"+kind.Path()+"/"+id, payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

func (c *Client) Delete(ctx context.Context, kind Kind, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/"+kind.Path()+"/"+id, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, raw)
	}
	return raw, nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	}
	return apiErr
}

// decodeRecords accepts both the canonical {"data": [...]} envelope
// and a bare array.
func decodeRecords(raw json.RawMessage) ([]Record, error) {
	items := unwrap(raw)
	var records []Record
	if err := json.Unmarshal(items, &records); err != nil {
		return nil, fmt.Errorf("unexpected list response: %w", err)
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) (Record, error) {
	item := unwrap(raw)
	var record Record
	if err := json.Unmarshal(item, &record); err != nil {
		return nil, fmt.Errorf("unexpected response: %w", err)
	}
	return record, nil
}

func unwrap(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}
