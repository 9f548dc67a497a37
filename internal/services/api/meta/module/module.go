// Package module mounts the meta endpoints: health, readiness, version and service info
package module

import (
	"time"

	"github.com/benya7/rss3-widget/internal/core/version"
	"github.com/benya7/rss3-widget/internal/modkit"
	"github.com/benya7/rss3-widget/internal/modkit/httpkit"

	metahttp "github.com/benya7/rss3-widget/internal/services/api/meta/http"
)

// Ports are the optional probes meta reports on
type Ports struct {
	Checks   []metahttp.Check
	Sessions func() int
}

// Module serves /meta
type Module struct {
	set       modkit.Settings
	ports     Ports
	startedAt time.Time
}

// New builds the meta module. Ports are optional
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	set := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	p, _ := set.Ports.(Ports)
	return &Module{set: set, ports: p, startedAt: time.Now()}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	modkit.Mount(r, m.set.Prefix, func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Checks:      m.ports.Checks,
			Sessions:    m.ports.Sessions,
		})
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.set.Name }

// Prefix is where the routes live
func (m *Module) Prefix() string { return m.set.Prefix }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }
