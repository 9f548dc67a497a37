// Package modkit composes the API out of modules: each owns a route prefix
// and exposes a ports value other modules are wired from
package modkit

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/benya7/rss3-widget/internal/modkit/httpkit"
	"github.com/benya7/rss3-widget/internal/platform/config"
	"github.com/benya7/rss3-widget/internal/platform/logger"
)

// Deps are shared by every module
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// HTTP is the outbound client; nil means http.DefaultClient
	HTTP *http.Client
}

// HTTPClient returns the shared outbound client
func (d Deps) HTTPClient() *http.Client {
	if d.HTTP != nil {
		return d.HTTP
	}
	return http.DefaultClient
}

// Module mounts routes and exposes ports
type Module interface {
	Name() string
	MountRoutes(r httpkit.Router)
	Ports() any
}

// Settings is what options resolve to
type Settings struct {
	Name    string
	Prefix  string
	Ports   any
	Swagger bool
}

// Option adjusts Settings
type Option func(*Settings)

// WithName names the module
func WithName(name string) Option { return func(s *Settings) { s.Name = name } }

// WithPrefix sets the route prefix
func WithPrefix(prefix string) Option { return func(s *Settings) { s.Prefix = prefix } }

// WithPorts hands a module the ports it depends on
func WithPorts[T any](p T) Option { return func(s *Settings) { s.Ports = p } }

// WithSwagger adds the module's operations to the API doc
func WithSwagger(on bool) Option { return func(s *Settings) { s.Swagger = on } }

// Build applies opts in order, later ones win
func Build(opts ...Option) Settings {
	var s Settings
	for _, o := range opts {
		o(&s)
	}
	s.Prefix = CleanPrefix(s.Prefix)
	return s
}

// CleanPrefix gives p exactly one leading slash and no trailing one. Empty stays empty
func CleanPrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// Mount registers routes under prefix, or directly on r when prefix is empty
func Mount(r httpkit.Router, prefix string, register func(httpkit.Router)) {
	if prefix == "" {
		register(r)
		return
	}
	r.Route(prefix, register)
}

// MustPorts returns m's ports as T, panicking when the module exposes something else
func MustPorts[T any](m Module) T {
	p, ok := m.Ports().(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("modkit: module %q exposes %T, not %T", m.Name(), m.Ports(), want))
	}
	return p
}
