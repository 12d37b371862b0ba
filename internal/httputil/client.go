// Package httputil provides the outbound HTTP client used for service
// lookups and remote embed descriptors, plus identifier sanitization.
package httputil

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RequestTimeout bounds every outbound call. Lookups that exceed it degrade
// to an unavailable result; nothing blocks a render indefinitely.
const RequestTimeout = 10 * time.Second

// maxRedirects caps redirect chains on descriptor fetches.
const maxRedirects = 10

// UserAgent builds the identifying user-agent string for the given host.
func UserAgent(hostname string) string {
	return fmt.Sprintf("embedkit/1.0 (+https://%s)", hostname)
}

// NewClient creates the HTTP client used for all outbound requests.
// The returned client enforces the request timeout and redirect cap.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: RequestTimeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 5,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// Get performs a GET request carrying the embedkit user agent and a Date header.
func Get(client *http.Client, url, hostname string) (*http.Response, error) {
	if err := ValidateURL(url); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent(hostname))
	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	return client.Do(req)
}

// GetBody performs a GET request and returns the response body, capped at 10MB.
func GetBody(client *http.Client, url, hostname string) ([]byte, error) {
	resp, err := Get(client, url, hostname)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return body, nil
}
