// Package paymongo is a thin REST client for the payment gateway. Responses
// are passed through as raw documents; callers re-wrap them in the
// {data: ...} envelope the gateway uses natively.
package paymongo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("paymongo: secret key is not configured")

// APIError carries the gateway's HTTP status and first error detail.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paymongo: status %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Document is a raw gateway resource, passed through untouched.
type Document = json.RawMessage

type errorResponse struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (Document, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(map[string]any{"data": map[string]any{"attributes": payload}})
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.secretKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paymongo: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paymongo: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var er errorResponse
		detail := "request failed"
		if json.Unmarshal(raw, &er) == nil && len(er.Errors) > 0 {
			detail = er.Errors[0].Detail
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: detail}
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Data == nil {
		return Document(raw), nil
	}
	return Document(envelope.Data), nil
}

func (c *Client) get(ctx context.Context, path string) (Document, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any) (Document, error) {
	return c.do(ctx, http.MethodPost, path, payload)
}

func (c *Client) put(ctx context.Context, path string, payload any) (Document, error) {
	return c.do(ctx, http.MethodPut, path, payload)
}
