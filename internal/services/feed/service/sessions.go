package service

import (
	"context"
	"sync"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	"github.com/benya7/rss3-widget/internal/platform/metrics"
	"github.com/benya7/rss3-widget/internal/services/feed/domain"

	"github.com/google/uuid"
)

// id seam
var newID = uuid.NewString

// DepsFunc builds fresh per session collaborators; ctx is the session context
type DepsFunc func(ctx context.Context) ControllerDeps

// SessionOptions configure the registry
type SessionOptions struct {
	// MaxSessions caps live sessions; 0 means unbounded
	MaxSessions  int
	Presentation domain.Presentation
	Defaults     domain.Query
}

// Sessions is the in memory registry of feed controllers
type Sessions struct {
	mu   sync.RWMutex
	m    map[string]*Controller
	opts SessionOptions
	deps DepsFunc

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSessions constructs the registry. Every session context derives from a root that CloseAll cancels
func NewSessions(deps DepsFunc, opts SessionOptions) *Sessions {
	if deps == nil {
		panic("feed sessions require a non nil DepsFunc")
	}
	if opts.Defaults.Limit <= 0 {
		opts.Defaults.Limit = domain.DefaultLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Sessions{
		m:      make(map[string]*Controller),
		opts:   opts,
		deps:   deps,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Defaults implements domain.ConfigPort
func (s *Sessions) Defaults() domain.Query { return s.opts.Defaults }

// Presentation implements domain.ConfigPort
func (s *Sessions) Presentation() domain.Presentation { return s.opts.Presentation }

// Merge fills the zero fields of q from the configured defaults
func (s *Sessions) Merge(q domain.Query) domain.Query {
	d := s.opts.Defaults
	if len(q.Accounts) == 0 {
		q.Accounts = d.Accounts
	}
	if len(q.Networks) == 0 {
		q.Networks = d.Networks
	}
	if len(q.Tags) == 0 {
		q.Tags = d.Tags
	}
	if len(q.Platforms) == 0 {
		q.Platforms = d.Platforms
	}
	if q.Limit <= 0 {
		q.Limit = d.Limit
	}
	return q
}

// Create registers a controller for q without fetching
func (s *Sessions) Create(q domain.Query) (*Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return nil, perr.Unavailablef("feed sessions are shutting down")
	}
	if s.opts.MaxSessions > 0 && len(s.m) >= s.opts.MaxSessions {
		return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "too many feed sessions (max %d)", s.opts.MaxSessions)
	}

	id := newID()
	sctx, cancel := context.WithCancel(s.ctx)
	deps := s.deps(sctx)
	c := NewController(sctx, id, s.Merge(q), s.opts.Presentation, deps)
	// the controller owns a child of sctx; release sctx with it
	context.AfterFunc(c.Context(), cancel)

	s.m[id] = c
	metrics.SessionOpened()
	logger.Named("feed").Debug().Str("session", id).Int("accounts", len(c.query.Accounts)).Msg("session opened")
	return c, nil
}

// Open creates a session and runs its first fetch and resolution pass.
// A failed first page closes the session again
func (s *Sessions) Open(ctx context.Context, q domain.Query) (domain.State, error) {
	c, err := s.Create(q)
	if err != nil {
		return domain.State{}, err
	}
	if err := c.Start(ctx); err != nil {
		_ = s.Close(c.ID())
		return domain.State{}, err
	}
	return c.State(), nil
}

// Get returns the live controller for id
func (s *Sessions) Get(id string) (*Controller, error) {
	s.mu.RLock()
	c, ok := s.m[id]
	s.mu.RUnlock()
	if !ok {
		return nil, perr.NotFoundf("feed session %q not found", id)
	}
	return c, nil
}

// State returns the snapshot of session id
func (s *Sessions) State(id string) (domain.State, error) {
	c, err := s.Get(id)
	if err != nil {
		return domain.State{}, err
	}
	return c.State(), nil
}

// LoadMore appends the next page of session id
func (s *Sessions) LoadMore(ctx context.Context, id string) (domain.State, error) {
	c, err := s.Get(id)
	if err != nil {
		return domain.State{}, err
	}
	if err := c.LoadMore(ctx); err != nil {
		return c.State(), err
	}
	return c.State(), nil
}

// Close drops session id and cancels its work
func (s *Sessions) Close(id string) error {
	s.mu.Lock()
	c, ok := s.m[id]
	delete(s.m, id)
	s.mu.Unlock()
	if !ok {
		return perr.NotFoundf("feed session %q not found", id)
	}
	c.Close()
	metrics.SessionClosed()
	return nil
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// CloseAll closes every session and refuses new ones
func (s *Sessions) CloseAll() {
	s.cancel()
	s.mu.Lock()
	all := s.m
	s.m = make(map[string]*Controller)
	s.mu.Unlock()
	for _, c := range all {
		c.Close()
		metrics.SessionClosed()
	}
}

var (
	_ domain.SessionsPort = (*Sessions)(nil)
	_ domain.ConfigPort   = (*Sessions)(nil)
)
