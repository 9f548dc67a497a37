package rss3

import "github.com/benya7/rss3-widget/internal/core/notes"

// NotesPage is one page of the notes endpoints
type NotesPage struct {
	Total  int          `json:"total"`
	Cursor string       `json:"cursor,omitempty"`
	Result []notes.Note `json:"result"`
}

// Profile is one identity bound to an address
type Profile struct {
	Address    string   `json:"address"`
	Handle     string   `json:"handle"`
	Network    string   `json:"network,omitempty"`
	Platform   string   `json:"platform,omitempty"`
	Name       string   `json:"name,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	ProfileURI []string `json:"profile_uri,omitempty"`
	Source     string   `json:"source,omitempty"`
}

// ProfilesPage is the profiles endpoints answer
type ProfilesPage struct {
	Total  int       `json:"total"`
	Cursor string    `json:"cursor,omitempty"`
	Result []Profile `json:"result"`
}
