package rss3

import (
	"context"
	"net/url"
	"strconv"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
)

// NotesParams filters the notes endpoints. Slices are sent as repeated keys (tag=a&tag=b)
type NotesParams struct {
	Network  []string
	Tag      []string
	Type     []string
	Platform []string
	Limit    int
	Cursor   string

	Hash        string
	Timestamp   string
	IncludePoap bool
	Refresh     bool
	CountOnly   bool
	QueryStatus bool
}

// Values encodes p as query parameters, omitting zero values
func (p NotesParams) Values() url.Values {
	q := url.Values{}
	for _, v := range p.Network {
		q.Add("network", v)
	}
	for _, v := range p.Tag {
		q.Add("tag", v)
	}
	for _, v := range p.Type {
		q.Add("type", v)
	}
	for _, v := range p.Platform {
		q.Add("platform", v)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Cursor != "" {
		q.Set("cursor", p.Cursor)
	}
	if p.Hash != "" {
		q.Set("hash", p.Hash)
	}
	if p.Timestamp != "" {
		q.Set("timestamp", p.Timestamp)
	}
	if p.IncludePoap {
		q.Set("include_poap", "true")
	}
	if p.Refresh {
		q.Set("refresh", "true")
	}
	if p.CountOnly {
		q.Set("count_only", "true")
	}
	if p.QueryStatus {
		q.Set("query_status", "true")
	}
	return q
}

// notesListBody is the POST /notes payload
type notesListBody struct {
	Address     []string `json:"address"`
	Network     []string `json:"network,omitempty"`
	Tag         []string `json:"tag,omitempty"`
	Type        []string `json:"type,omitempty"`
	Platform    []string `json:"platform,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Cursor      string   `json:"cursor,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
	IncludePoap bool     `json:"include_poap,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`
	CountOnly   bool     `json:"count_only,omitempty"`
	QueryStatus bool     `json:"query_status,omitempty"`
}

type profilesListBody struct {
	Address []string `json:"address"`
}

// NotesByAddress performs GET /notes/{address}
func (c *Client) NotesByAddress(ctx context.Context, address string, p NotesParams) (NotesPage, error) {
	var out NotesPage
	if address == "" {
		return out, perr.InvalidArgf("rss3 notes: address is required")
	}
	err := c.getJSON(ctx, "notes", "/notes/"+url.PathEscape(address), p.Values(), &out)
	return out, err
}

// NotesByAddressList performs POST /notes for several addresses at once
func (c *Client) NotesByAddressList(ctx context.Context, addresses []string, p NotesParams) (NotesPage, error) {
	var out NotesPage
	if len(addresses) == 0 {
		return out, perr.InvalidArgf("rss3 notes list: at least one address is required")
	}
	body := notesListBody{
		Address:     addresses,
		Network:     p.Network,
		Tag:         p.Tag,
		Type:        p.Type,
		Platform:    p.Platform,
		Limit:       p.Limit,
		Cursor:      p.Cursor,
		Timestamp:   p.Timestamp,
		IncludePoap: p.IncludePoap,
		Refresh:     p.Refresh,
		CountOnly:   p.CountOnly,
		QueryStatus: p.QueryStatus,
	}
	err := c.postJSON(ctx, "notes_list", "/notes", body, &out)
	return out, err
}

// Profile performs GET /profiles/{addressOrHandle}
func (c *Client) Profile(ctx context.Context, addressOrHandle string) (ProfilesPage, error) {
	var out ProfilesPage
	if addressOrHandle == "" {
		return out, perr.InvalidArgf("rss3 profiles: address is required")
	}
	err := c.getJSON(ctx, "profiles", "/profiles/"+url.PathEscape(addressOrHandle), nil, &out)
	return out, err
}

// ProfilesByList performs POST /profiles for several addresses at once
func (c *Client) ProfilesByList(ctx context.Context, addresses []string) (ProfilesPage, error) {
	var out ProfilesPage
	if len(addresses) == 0 {
		return out, perr.InvalidArgf("rss3 profiles list: at least one address is required")
	}
	err := c.postJSON(ctx, "profiles_list", "/profiles", profilesListBody{Address: addresses}, &out)
	return out, err
}
