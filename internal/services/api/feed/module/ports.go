package module

import (
	"github.com/benya7/rss3-widget/internal/services/api/feed/domain"
	feeddom "github.com/benya7/rss3-widget/internal/services/feed/domain"
)

// Ports declares the worker ports this API module needs injected (from services/feed)
type Ports struct {
	Sessions feeddom.SessionsPort
	Config   feeddom.ConfigPort
	Names    domain.NamePort
}
