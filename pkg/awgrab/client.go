package awgrab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// requestedBy identifies this tool to the device on destructive calls.
const requestedBy = "AW-5-UI"

// Client talks to the device's directory listing server. Every call is a
// single attempt; the device is too small to enjoy retry storms, so retries
// and timeouts belong to the caller.
type Client struct {
	hc      *http.Client
	headers map[string]string
}

// NewClient returns a client sending the given headers on every request.
func NewClient(headers map[string]string) *Client {
	return &Client{hc: &http.Client{}, headers: headers}
}

// Get fetches url and returns the response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteFetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// Delete issues a single DELETE against url, always identifying itself via
// X-Requested-By on top of any caller-supplied headers. On a non-2xx
// response the body is returned alongside the error for reporting.
func (c *Client) Delete(ctx context.Context, url string, headers map[string]string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return 0, "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Requested-By", requestedBy)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, "", &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, string(body), &RemoteFetchError{URL: url, Status: resp.StatusCode}
	}
	return resp.StatusCode, "", nil
}

// FetchImage fetches one image as-is, returning its bytes and the filename
// derived from the URL.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	name, err := FileNameFromURL(imageURL)
	if err != nil {
		return nil, "", err
	}
	data, err := c.Get(ctx, imageURL)
	if err != nil {
		return nil, "", err
	}
	return data, name, nil
}

// EnsureSlash normalizes a listing or folder URL to end with "/". The
// device resolves relative hrefs and folder DELETEs against the
// slash-terminated form only.
func EnsureSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
