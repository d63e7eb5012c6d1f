// Package transport is the HTTP session shared by all requests of one call:
// a pooled connection set capped per host, browser-like headers and JSON
// decoding of response bodies.
package transport

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// DefaultUserAgent mimics a browser to avoid being blocked by the API.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Getter performs one GET and decodes the JSON body into out.
type Getter interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// Options configure a Client.
type Options struct {
	// MaxConns caps simultaneous connections per host. Zero means unlimited.
	MaxConns  int
	Timeout   time.Duration
	UserAgent string
	Logger    zerolog.Logger
}

// Client is a resty-backed Getter. Safe for concurrent use.
type Client struct {
	rc  *resty.Client
	log zerolog.Logger
}

// New builds a Client whose connection pool allows at most opts.MaxConns
// connections per host. HTTP/2 is disabled so that each in-flight request
// holds its own connection and the cap bounds concurrency.
func New(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxConnsPerHost:       opts.MaxConns,
		MaxIdleConns:          opts.MaxConns,
		MaxIdleConnsPerHost:   opts.MaxConns,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		TLSNextProto:          map[string]func(string, *tls.Conn) http.RoundTripper{},
	}
	rc := resty.NewWithClient(&http.Client{Transport: tr}).
		SetTimeout(opts.Timeout).
		SetHeaders(map[string]string{
			"Accept":          "application/json",
			"Accept-Encoding": "gzip, br",
			"User-Agent":      opts.UserAgent,
		})
	rc.OnAfterResponse(Decompress)
	return &Client{rc: rc, log: opts.Logger}
}

// GetJSON fetches url and decodes the body into out. Non-2xx statuses are
// not errors by themselves: the API reports failures inside the JSON body.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	resp, err := c.rc.R().SetContext(ctx).Get(url)
	if err != nil {
		return err
	}
	c.log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("GET")
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response from %s (status %d): %w", url, resp.StatusCode(), err)
	}
	return nil
}
