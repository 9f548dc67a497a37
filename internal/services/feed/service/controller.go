// Package service composes the feed pipeline into sessions
package service

import (
	"context"
	"sync"
	"time"

	"github.com/benya7/rss3-widget/internal/core/classify"
	"github.com/benya7/rss3-widget/internal/core/format"
	"github.com/benya7/rss3-widget/internal/core/notes"
	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	"github.com/benya7/rss3-widget/internal/services/feed/domain"

	"github.com/rs/zerolog"
)

// clock seam
var now = time.Now

// Pager fetches one page of notes
type Pager interface {
	FetchPage(ctx context.Context, accounts []string, f domain.Filters, cursor string) (domain.Page, error)
}

// Identities resolves note parties and answers cached names
type Identities interface {
	ResolveNotes(ctx context.Context, ns []notes.Note) error
	format.NameLookup
}

// MediaLookup answers the media kind of an attachment URL
type MediaLookup interface {
	Lookup(url string) classify.MediaKind
}

// ErrClosed is returned by a controller after Close
var ErrClosed = perr.New(perr.ErrorCodeNotFound, "feed session closed")

// Controller is one feed session. Page fetches are serialized so notes are
// appended in request order; results arriving after Close are discarded
type Controller struct {
	id    string
	query domain.Query
	pres  domain.Presentation

	pager Pager
	ident Identities
	media MediaLookup

	// fetchMu serializes Start and LoadMore
	fetchMu sync.Mutex

	mu      sync.RWMutex
	notes   []notes.Note
	// last keeps the newest page's cursor, its notes live in notes
	last    domain.Page
	started bool
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger
}

// ControllerDeps are the collaborators of one session
type ControllerDeps struct {
	Pager      Pager
	Identities Identities
	Media      MediaLookup
}

// NewController builds a session bound to parent; canceling parent closes the session's work
func NewController(parent context.Context, id string, q domain.Query, pres domain.Presentation, d ControllerDeps) *Controller {
	if d.Pager == nil || d.Identities == nil {
		panic("feed controller requires a Pager and Identities")
	}
	ctx, cancel := context.WithCancel(parent)
	return &Controller{
		id:     id,
		query:  q,
		pres:   pres,
		pager:  d.Pager,
		ident:  d.Identities,
		media:  d.Media,
		ctx:    ctx,
		cancel: cancel,
		log:    logger.Named("feed").With().Str("session", id).Logger(),
	}
}

// ID returns the session id
func (c *Controller) ID() string { return c.id }

// Context is canceled when the controller closes
func (c *Controller) Context() context.Context { return c.ctx }

// Start fetches the first page and resolves its parties. It is a no-op once a page landed
func (c *Controller) Start(ctx context.Context) error {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	c.mu.RLock()
	started, closed := c.started, c.closed
	c.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if started {
		return nil
	}
	return c.fetch(ctx, "")
}

// LoadMore fetches the next page and appends it. Without a cursor it returns without I/O.
// A failed fetch leaves the state untouched so the caller can retry
func (c *Controller) LoadMore(ctx context.Context) error {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	c.mu.RLock()
	started, closed, last := c.started, c.closed, c.last
	c.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if !started {
		return c.fetch(ctx, "")
	}
	if last.Exhausted() {
		return nil
	}
	return c.fetch(ctx, last.Cursor)
}

func (c *Controller) fetch(ctx context.Context, cursor string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	page, err := c.pager.FetchPage(ctx, c.query.Accounts, c.query.Filters, cursor)
	if err != nil {
		if c.ctx.Err() != nil {
			return ErrClosed
		}
		c.log.Warn().Err(err).Str("cursor", cursor).Msg("page fetch failed")
		return err
	}

	if err := c.ident.ResolveNotes(ctx, page.Notes); err != nil {
		if c.ctx.Err() != nil {
			return ErrClosed
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.notes = append(c.notes, page.Notes...)
	c.last = domain.Page{Cursor: page.Cursor}
	c.started = true

	c.log.Debug().
		Int("appended", len(page.Notes)).
		Int("notes", len(c.notes)).
		Bool("has_more", !page.Exhausted()).
		Msg("page appended")
	return nil
}

// State renders the current snapshot. Names and media kinds are read at call time
func (c *Controller) State() domain.State {
	c.mu.RLock()
	ns := c.notes
	st := domain.State{
		ID:      c.id,
		Loading: !c.started,
		HasMore: c.started && !c.last.Exhausted(),
		Config:  c.pres,
	}
	c.mu.RUnlock()

	t := now()
	st.Items = make([]domain.Item, 0, len(ns))
	for _, n := range ns {
		d := classify.Describe(n, c.ident)
		if c.media != nil {
			d.ApplyMedia(c.media.Lookup)
		}
		st.Items = append(st.Items, domain.Item{
			Network:    n.Network,
			Hash:       n.Hash,
			Timestamp:  n.Timestamp,
			When:       format.RelativeDate(n.Timestamp, t),
			Descriptor: d,
		})
	}
	return st
}

// Settle blocks until pending media probes finish when the media source can report that
func (c *Controller) Settle() {
	if w, ok := c.media.(interface{ Wait() }); ok {
		w.Wait()
	}
}

// Close cancels in flight work and makes later results land nowhere. Safe to call twice
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// Closed reports whether Close was called
func (c *Controller) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
