// Package rss3 provides a client for the RSS3 notes and profiles API
package rss3

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	"github.com/benya7/rss3-widget/internal/platform/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	baseURLDefault = "https://pregod.rss3.dev/v1"
	defaultTimeout = 30 * time.Second
	defaultUA      = "rss3-widget"
	maxBodyBytes   = 8 << 20
	maxErrBody     = 64 << 10
)

// TokenFunc returns a bearer token for the next request, "" to skip the header
type TokenFunc func(ctx context.Context) (string, error)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// RatePerSec caps outbound requests; 0 disables the limiter
	RatePerSec float64
	Burst      int

	// Token is optional; when nil no Authorization header is sent
	Token TokenFunc

	// Debug logs every request and response summary
	Debug bool

	// HTTPClient overrides the transport, mostly for tests
	HTTPClient *http.Client
}

// Client talks to the RSS3 API. Non 2xx/3xx answers are returned as errors carrying the body.
// Requests are never retried
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     zerolog.Logger
	now     func() time.Time
}

// NewClient creates a Client with defaults applied
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}

	var lim *rate.Limiter
	if o.RatePerSec > 0 {
		burst := o.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(o.RatePerSec), burst)
	}

	lg := *logger.Named("rss3")
	if o.Debug {
		lg = lg.Level(zerolog.DebugLevel)
	} else {
		lg = lg.Level(zerolog.InfoLevel)
	}

	return &Client{
		http:    hc,
		opts:    o,
		limiter: lim,
		log:     lg,
		now:     time.Now,
	}
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// do issues one request. endpoint is a low cardinality label for metrics
func (c *Client) do(ctx context.Context, endpoint, method, path string, q url.Values, body any) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "rss3 rate limiter wait")
		}
	}

	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "rss3 encode %s body", endpoint)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "rss3 new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Token != nil {
		tok, err := c.opts.Token(ctx)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnauthorized, "rss3 token")
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	} else {
		c.log.Debug().Msg("no token configured, skipping authorization header")
	}

	c.log.Debug().Str("method", method).Str("url", u).Msg("rss3 http request")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		metrics.UpstreamRequest(endpoint, "error", lat)
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "rss3 %s failed", endpoint)
	}
	metrics.UpstreamRequest(endpoint, statusClass(resp.StatusCode), lat)

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("rss3 http response")

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		_ = resp.Body.Close()
		return nil, newStatusError(endpoint, resp.StatusCode, raw)
	}
	return resp, nil
}

// Ping checks that the API root answers below 500
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/", nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "rss3 new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		metrics.UpstreamRequest("ping", "error", lat)
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "rss3 ping failed")
	}
	defer func() { _ = drainAndClose(resp.Body) }()
	metrics.UpstreamRequest("ping", statusClass(resp.StatusCode), lat)
	if resp.StatusCode >= 500 {
		return newStatusError("ping", resp.StatusCode, nil)
	}
	return nil
}

// getJSON performs GET and decodes the JSON answer into out
func (c *Client) getJSON(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	resp, err := c.do(ctx, endpoint, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}
	return decodeBody(resp, endpoint, out)
}

// postJSON performs POST with a JSON body and decodes the JSON answer into out
func (c *Client) postJSON(ctx context.Context, endpoint, path string, body, out any) error {
	resp, err := c.do(ctx, endpoint, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return decodeBody(resp, endpoint, out)
}

func decodeBody(resp *http.Response, endpoint string, out any) error {
	defer func() { _ = drainAndClose(resp.Body) }()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "rss3 read %s body", endpoint)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "rss3 decode %s", endpoint)
	}
	return nil
}
