package module

import (
	"github.com/benya7/rss3-widget/internal/services/feed/domain"
	"github.com/benya7/rss3-widget/internal/services/feed/resolver"
)

// Ports holds the ports exposed by the feed module
type Ports struct {
	Sessions domain.SessionsPort
	Config   domain.ConfigPort
	// Identities resolves single addresses outside any session
	Identities *resolver.Resolver
	// Ping reports whether the RSS3 API answers
	Ping PingFunc
}
