// Package media probes attachment URLs for their coarse media type
package media

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/benya7/rss3-widget/internal/core/classify"
	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/platform/logger"

	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "rss3-widget"
)

// Options configures the Prober
type Options struct {
	// Timeout bounds one probe, including the time to first byte
	Timeout   time.Duration
	UserAgent string

	// HTTPClient overrides the transport, mostly for tests
	HTTPClient *http.Client
}

// Prober issues a GET per URL and reads the Content-Type header only
type Prober struct {
	http    *http.Client
	timeout time.Duration
	ua      string
	log     zerolog.Logger
}

// NewProber creates a Prober with defaults applied
func NewProber(o Options) *Prober {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Prober{
		http:    hc,
		timeout: o.Timeout,
		ua:      o.UserAgent,
		log:     *logger.Named("media"),
	}
}

// Probe rewrites ipfs:// URLs to the gateway, fetches and classifies the answer.
// Non 2xx answers and transport failures are errors; callers map them to unknown
func (p *Prober) Probe(ctx context.Context, url string) (classify.MediaKind, error) {
	if url == "" {
		return classify.MediaUnknown, perr.InvalidArgf("media probe: url is required")
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	target := classify.IPFSGateway(url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return classify.MediaUnknown, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "media probe: bad url %q", url)
	}
	req.Header.Set("User-Agent", p.ua)

	resp, err := p.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return classify.MediaUnknown, perr.Wrapf(err, perr.ErrorCodeTimeout, "media probe timed out after %s", p.timeout)
		}
		return classify.MediaUnknown, perr.Wrapf(err, perr.ErrorCodeUnavailable, "media probe failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify.MediaUnknown, perr.Newf(perr.FromHTTPStatus(resp.StatusCode), "media probe status %d", resp.StatusCode)
	}

	kind := classify.KindFromContentType(resp.Header.Get("Content-Type"))
	p.log.Debug().Str("url", target).Str("kind", string(kind)).Msg("media probed")
	return kind, nil
}
