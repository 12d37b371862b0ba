// Package oembed fetches third-party embed descriptors (oEmbed-style JSON)
// and extracts the embeddable fragment from them. Transport and parse
// failures are reported as distinct sentinel errors; callers degrade to an
// "unavailable" result and never let a failed fetch abort page rendering.
package oembed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"embedkit/internal/httputil"
)

var (
	// ErrUnavailable means the descriptor could not be fetched.
	ErrUnavailable = errors.New("embed descriptor unavailable")
	// ErrBadDescriptor means the response was not a JSON mapping.
	ErrBadDescriptor = errors.New("embed descriptor not parseable")
)

// Client fetches remote embed descriptors.
type Client struct {
	HTTP     *http.Client
	Hostname string
	Narrower Narrower
}

// NewClient creates a descriptor client identifying itself with the
// deployment's hostname.
func NewClient(hostname string) *Client {
	return &Client{
		HTTP:     httputil.NewClient(),
		Hostname: hostname,
		Narrower: SubstringNarrower{},
	}
}

// Fetch retrieves and parses a descriptor. Non-2xx responses and transport
// errors yield ErrUnavailable; responses that are not a JSON mapping yield
// ErrBadDescriptor.
func (c *Client) Fetch(url string) (*Info, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", httputil.UserAgent(c.Hostname))
	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDescriptor, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: descriptor is not a mapping", ErrBadDescriptor)
	}

	narrower := c.Narrower
	if narrower == nil {
		narrower = SubstringNarrower{}
	}

	return &Info{fields: fields, narrower: narrower}, nil
}

// Info is one parsed descriptor. Accessors report each field independently;
// a partial descriptor is normal, not a failure.
type Info struct {
	fields   map[string]any
	narrower Narrower
}

// NewInfo wraps raw descriptor fields, mainly for tests.
func NewInfo(fields map[string]any) *Info {
	return &Info{fields: fields, narrower: SubstringNarrower{}}
}

func (i *Info) str(key string) (string, bool) {
	v, ok := i.fields[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (i *Info) num(key string) (int, bool) {
	switch v := i.fields[key].(type) {
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// Title returns the descriptor's title field.
func (i *Info) Title() (string, bool) { return i.str("title") }

// AuthorName returns the descriptor's author_name field.
func (i *Info) AuthorName() (string, bool) { return i.str("author_name") }

// ProviderName returns the descriptor's provider_name field.
func (i *Info) ProviderName() (string, bool) { return i.str("provider_name") }

// Width returns the descriptor's width field.
func (i *Info) Width() (int, bool) { return i.num("width") }

// Height returns the descriptor's height field.
func (i *Info) Height() (int, bool) { return i.num("height") }

// HTML returns the embeddable fragment, narrowed to the playable element
// with any provider wrapper markup discarded.
func (i *Info) HTML() (string, bool) {
	raw, ok := i.str("html")
	if !ok {
		return "", false
	}
	return i.narrower.Narrow(raw)
}
