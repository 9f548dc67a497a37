// Package paginator fetches cursor based note pages for one or more accounts
package paginator

import (
	"context"

	"github.com/benya7/rss3-widget/internal/adapters/rss3"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	"github.com/benya7/rss3-widget/internal/platform/metrics"
	"github.com/benya7/rss3-widget/internal/services/feed/domain"

	"github.com/rs/zerolog"
)

// Source is the part of the RSS3 client the paginator needs
type Source interface {
	NotesByAddress(ctx context.Context, address string, p rss3.NotesParams) (rss3.NotesPage, error)
	NotesByAddressList(ctx context.Context, addresses []string, p rss3.NotesParams) (rss3.NotesPage, error)
}

// Paginator issues one page fetch per call. Overlapping calls are not deduplicated
type Paginator struct {
	src Source
	log zerolog.Logger
}

// New constructs a Paginator
func New(src Source) *Paginator {
	if src == nil {
		panic("paginator requires a non nil Source")
	}
	return &Paginator{src: src, log: *logger.Named("paginator")}
}

// FetchPage fetches the page after cursor ("" for the first page).
// Zero accounts is a no-op returning an empty exhausted page
func (p *Paginator) FetchPage(ctx context.Context, accounts []string, f domain.Filters, cursor string) (domain.Page, error) {
	if len(accounts) == 0 {
		return domain.Page{}, nil
	}

	params := rss3.NotesParams{
		Network:  f.Networks,
		Tag:      f.Tags,
		Platform: f.Platforms,
		Limit:    f.Limit,
		Cursor:   cursor,
	}

	var (
		raw  rss3.NotesPage
		err  error
		mode string
	)
	if len(accounts) == 1 {
		mode = "single"
		raw, err = p.src.NotesByAddress(ctx, accounts[0], params)
	} else {
		mode = "list"
		raw, err = p.src.NotesByAddressList(ctx, accounts, params)
	}
	metrics.PageFetched(mode, len(raw.Result), err)
	if err != nil {
		return domain.Page{}, err
	}

	next := raw.Cursor
	// a short page ends the stream whatever cursor came back
	if raw.Total < f.Limit {
		next = ""
	}

	p.log.Debug().
		Str("mode", mode).
		Int("notes", len(raw.Result)).
		Int("total", raw.Total).
		Bool("exhausted", next == "").
		Msg("page fetched")

	return domain.Page{Notes: raw.Result, Cursor: next, Total: raw.Total}, nil
}
