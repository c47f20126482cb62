package lcu

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	loopbackHost = "127.0.0.1"
	authUser     = "riot"
)

// Client performs authenticated requests against the local client API.
// Certificate verification is disabled on this client's own transport only:
// the API presents a self-signed certificate generated per client run.
type Client struct {
	http *http.Client
	host string
}

// NewClient builds a Client with its own relaxed TLS transport.
func NewClient() *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- loopback only
	return &Client{
		http: &http.Client{Transport: transport},
		host: loopbackHost,
	}
}

// Request issues one call to https://127.0.0.1:<port><path> and returns the
// response text. Errors are *APIError. There is no retry; on failure callers
// should rediscover and try again.
func (c *Client) Request(ctx context.Context, conn ConnectionInfo, method, path string, body *string) (string, error) {
	if !httpguts.ValidHeaderFieldName(method) {
		return "", &APIError{Kind: KindInvalidMethod, Method: method, Err: ErrInvalidMethod}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := "https://" + c.host + ":" + strconv.Itoa(int(conn.Port)) + path

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(*body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return "", &APIError{Kind: KindTransport, Message: fmt.Sprintf("create request: %v", err), Err: err}
	}
	req.Header.Set("Authorization", "Basic "+basicCredential(conn.Password))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &APIError{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Kind: KindTransport, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Kind: KindHTTP, Status: resp.StatusCode, Body: string(data)}
	}
	return string(data), nil
}

func basicCredential(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(authUser + ":" + password))
}
