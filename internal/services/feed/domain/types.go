// Package domain holds feed pipeline types independent of transport or upstream client
package domain

import (
	"time"

	"github.com/benya7/rss3-widget/internal/core/classify"
	"github.com/benya7/rss3-widget/internal/core/notes"
)

// DefaultLimit is the page size used when none is configured
const DefaultLimit = 10

// Filters narrow a notes query. They are identical for single and multi account fetches
type Filters struct {
	Networks  []string `json:"networks,omitempty"  yaml:"networks"`
	Tags      []string `json:"tags,omitempty"      yaml:"tags"`
	Platforms []string `json:"platforms,omitempty" yaml:"platforms"`
	Limit     int      `json:"limit"               yaml:"limit"`
}

// Query is what a feed session follows
type Query struct {
	Accounts []string `json:"accounts"`
	Filters
}

// Page is the result of one fetch. Cursor "" means the stream is exhausted
type Page struct {
	Notes  []notes.Note
	Cursor string
	Total  int
}

// Exhausted reports whether no further page may exist
func (p Page) Exhausted() bool { return p.Cursor == "" }

// Presentation carries the widget display settings for an external renderer
type Presentation struct {
	DisableDarkMode bool   `json:"disable_dark_mode"`
	ContainerClass  string `json:"container_class,omitempty"`
}

// Item is one render ready feed entry
type Item struct {
	Network    string              `json:"network"`
	Hash       string              `json:"hash"`
	Timestamp  time.Time           `json:"timestamp"`
	When       string              `json:"when"`
	Descriptor classify.Descriptor `json:"descriptor"`
}

// State is the render ready snapshot of a feed session
type State struct {
	ID      string       `json:"id"`
	Loading bool         `json:"loading"`
	HasMore bool         `json:"has_more"`
	Items   []Item       `json:"items"`
	Config  Presentation `json:"config"`
}
