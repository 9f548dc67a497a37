// Package module wires the feed pipeline and exposes its ports
package module

import (
	"context"
	"time"

	"github.com/benya7/rss3-widget/internal/adapters/media"
	"github.com/benya7/rss3-widget/internal/adapters/rss3"
	"github.com/benya7/rss3-widget/internal/modkit"
	"github.com/benya7/rss3-widget/internal/modkit/httpkit"
	mediacache "github.com/benya7/rss3-widget/internal/services/feed/media"
	"github.com/benya7/rss3-widget/internal/services/feed/paginator"
	"github.com/benya7/rss3-widget/internal/services/feed/resolver"
	"github.com/benya7/rss3-widget/internal/services/feed/service"
)

// PingFunc checks the upstream API
type PingFunc func(ctx context.Context) error

// Module defines the feed pipeline module. It mounts no routes of its own
type Module struct {
	deps     modkit.Deps
	opts     Options
	client   *rss3.Client
	sessions *service.Sessions
	ports    Ports
}

// New constructs the feed module from already loaded options
func New(deps modkit.Deps, opts Options) *Module {
	client := rss3.NewClient(rss3.Options{
		BaseURL:    opts.ServiceBaseURL,
		Timeout:    opts.Timeout,
		RatePerSec: opts.RatePerSec,
		Burst:      opts.Burst,
		Token:      staticToken(opts.AuthToken),
		Debug:      opts.Debug,
		HTTPClient: deps.HTTP,
	})
	prober := media.NewProber(media.Options{Timeout: opts.MediaProbeTimeout, HTTPClient: deps.HTTP})
	pager := paginator.New(client)

	sessions := service.NewSessions(func(ctx context.Context) service.ControllerDeps {
		return service.ControllerDeps{
			Pager:      pager,
			Identities: resolver.New(client, nil),
			Media:      mediacache.New(ctx, prober),
		}
	}, service.SessionOptions{
		MaxSessions:  opts.MaxSessions,
		Presentation: opts.Presentation(),
		Defaults:     opts.Query(),
	})

	m := &Module{deps: deps, opts: opts, client: client, sessions: sessions}
	m.ports = Ports{
		Sessions:   sessions,
		Config:     sessions,
		Identities: resolver.New(client, nil),
		Ping:       m.ping,
	}
	return m
}

// NewFromConfig loads FEED_* options and constructs the module
func NewFromConfig(deps modkit.Deps) (*Module, error) {
	opts, err := FromConfig(deps.Cfg)
	if err != nil {
		return nil, err
	}
	return New(deps, opts), nil
}

// Options returns the loaded settings
func (m *Module) Options() Options { return m.opts }

// Client returns the RSS3 client
func (m *Module) Client() *rss3.Client { return m.client }

// Sessions returns the session registry
func (m *Module) Sessions() *service.Sessions { return m.sessions }

// Close closes every open session
func (m *Module) Close() { m.sessions.CloseAll() }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "feed" }

// Prefix returns the module route prefix (none for the pipeline module)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

// ping asks for a one note page of the first configured account, or the API root
func (m *Module) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if len(m.opts.Accounts) > 0 {
		_, err := m.client.NotesByAddress(ctx, m.opts.Accounts[0], rss3.NotesParams{Limit: 1})
		return err
	}
	return m.client.Ping(ctx)
}

func staticToken(tok string) rss3.TokenFunc {
	if tok == "" {
		return nil
	}
	return func(context.Context) (string, error) { return tok, nil }
}
