// Package media caches attachment media kinds and probes unknown URLs in the background
package media

import (
	"context"
	"sync"

	"github.com/benya7/rss3-widget/internal/core/classify"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	"github.com/benya7/rss3-widget/internal/platform/metrics"

	"github.com/rs/zerolog"
)

// Prober resolves the media kind of one URL
type Prober interface {
	Probe(ctx context.Context, url string) (classify.MediaKind, error)
}

// Cache answers Lookup from memory and starts one probe per unseen URL.
// Probes run under the context given to New and stop when it is canceled
type Cache struct {
	ctx   context.Context
	p     Prober
	mu    sync.Mutex
	kinds map[string]classify.MediaKind
	// pending holds a channel per running probe, closed when it settles
	pending map[string]chan struct{}
	log     zerolog.Logger
}

// New constructs a Cache bound to ctx
func New(ctx context.Context, p Prober) *Cache {
	if p == nil {
		panic("media cache requires a non nil Prober")
	}
	return &Cache{
		ctx:   ctx,
		p:     p,
		kinds:   make(map[string]classify.MediaKind),
		pending: make(map[string]chan struct{}),
		log:     *logger.Named("media"),
	}
}

// Lookup returns the known kind for url, or MediaLoading while its probe runs
func (c *Cache) Lookup(url string) classify.MediaKind {
	if url == "" {
		return classify.MediaUnknown
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if k, ok := c.kinds[url]; ok {
		return k
	}
	if c.ctx.Err() != nil {
		return classify.MediaUnknown
	}
	c.kinds[url] = classify.MediaLoading
	done := make(chan struct{})
	c.pending[url] = done
	go c.probe(url, done)
	return classify.MediaLoading
}

func (c *Cache) probe(url string, done chan struct{}) {
	defer close(done)
	kind, err := c.p.Probe(c.ctx, url)
	if err != nil {
		c.log.Debug().Err(err).Str("url", url).Msg("media probe failed, treating as unknown")
		kind = classify.MediaUnknown
	}
	metrics.MediaProbe(string(kind))

	c.mu.Lock()
	c.kinds[url] = kind
	delete(c.pending, url)
	c.mu.Unlock()
}

// Wait blocks until the probes running at call time have settled.
// Lookups may start new probes meanwhile; those are not waited for
func (c *Cache) Wait() {
	c.mu.Lock()
	running := make([]chan struct{}, 0, len(c.pending))
	for _, done := range c.pending {
		running = append(running, done)
	}
	c.mu.Unlock()
	for _, done := range running {
		<-done
	}
}
