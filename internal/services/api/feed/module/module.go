// Package module mounts the feed session routes on top of the worker's ports
package module

import (
	"github.com/benya7/rss3-widget/internal/modkit"
	"github.com/benya7/rss3-widget/internal/modkit/httpkit"
	"github.com/benya7/rss3-widget/internal/modkit/swaggerkit"

	fhttp "github.com/benya7/rss3-widget/internal/services/api/feed/http"
)

// Module serves /feeds
type Module struct {
	set   modkit.Settings
	ports Ports
}

// New builds the feed API module. Sessions, Config and Names must arrive through modkit.WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	set := modkit.Build(append([]modkit.Option{
		modkit.WithName("feeds"),
		modkit.WithPrefix("/feeds"),
	}, opts...)...)

	p, _ := set.Ports.(Ports)
	if p.Sessions == nil || p.Config == nil || p.Names == nil {
		panic("feeds module: Sessions, Config and Names ports are required")
	}
	m := &Module{set: set, ports: p}

	if set.Swagger {
		swaggerkit.Register(func(doc map[string]any) {
			swaggerkit.AddOperations(doc, fhttp.Operations(set.Prefix)...)
		})
	}
	return m
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	modkit.Mount(r, m.set.Prefix, func(r httpkit.Router) {
		fhttp.Register(r, fhttp.Deps{
			Sessions: m.ports.Sessions,
			Config:   m.ports.Config,
			Names:    m.ports.Names,
		})
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.set.Name }

// Prefix is where the routes live
func (m *Module) Prefix() string { return m.set.Prefix }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }
