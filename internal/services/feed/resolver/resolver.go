// Package resolver turns addresses into display names through RSS3 profiles
package resolver

import (
	"context"

	"github.com/benya7/rss3-widget/internal/adapters/rss3"
	"github.com/benya7/rss3-widget/internal/core/format"
	"github.com/benya7/rss3-widget/internal/core/notes"
	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	"github.com/benya7/rss3-widget/internal/platform/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Profiles is the part of the RSS3 client the resolver needs
type Profiles interface {
	Profile(ctx context.Context, addressOrHandle string) (rss3.ProfilesPage, error)
}

// ProfileLists is implemented by sources that answer several addresses per call
type ProfileLists interface {
	ProfilesByList(ctx context.Context, addresses []string) (rss3.ProfilesPage, error)
}

// Resolver memoizes address lookups in a per session Cache.
// Concurrent lookups of the same address share one upstream call
type Resolver struct {
	src   Profiles
	cache *Cache
	sf    singleflight.Group
	log   zerolog.Logger
}

// New constructs a Resolver. A nil cache gets a fresh one
func New(src Profiles, cache *Cache) *Resolver {
	if src == nil {
		panic("resolver requires a non nil Profiles source")
	}
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{src: src, cache: cache, log: *logger.Named("resolver")}
}

// Cache returns the session cache; it satisfies format.NameLookup
func (r *Resolver) Cache() *Cache { return r.cache }

// Format renders address with the cached name or the truncated form
func (r *Resolver) Format(address string) string { return format.Account(address, r.cache) }

// Resolve returns the display name for address, looking it up when uncached.
// Lookup failures and empty answers fall back to the address itself and are
// only returned when ctx was canceled
func (r *Resolver) Resolve(ctx context.Context, address string) (string, error) {
	if address == "" {
		return "", nil
	}
	if n, ok := r.cache.Name(address); ok {
		metrics.IdentityLookup("hit")
		return n, nil
	}

	v, err, _ := r.sf.Do(address, func() (any, error) {
		return r.lookup(ctx, address)
	})
	if err != nil {
		return address, err
	}
	return v.(string), nil
}

// lookup fetches the profile for address and caches its handle under both the
// queried key and the canonical address the profile answered with
func (r *Resolver) lookup(ctx context.Context, address string) (string, error) {
	page, err := r.src.Profile(ctx, address)
	if err != nil {
		if ctx.Err() != nil {
			return address, perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "resolve %s", address)
		}
		if rss3.IsNotFound(err) {
			metrics.IdentityLookup("self")
			return r.remember(address, address), nil
		}
		metrics.IdentityLookup("error")
		r.log.Debug().Err(err).Str("address", address).Msg("profile lookup failed, using address")
		return r.remember(address, address), nil
	}
	if len(page.Result) == 0 {
		metrics.IdentityLookup("self")
		return r.remember(address, address), nil
	}

	p := page.Result[0]
	key := p.Address
	if key == "" {
		key = address
	}
	handle := format.Handle(p.Handle)
	name := handle
	if name == "" {
		name = key
	}
	if r.cache.Put(key, name) {
		metrics.IdentityLookup("resolved")
	}
	if key != address {
		if handle == "" {
			handle = address
		}
		return r.remember(address, handle), nil
	}
	n, _ := r.cache.Name(key)
	return n, nil
}

// remember caches name under address and returns whatever the cache holds
func (r *Resolver) remember(address, name string) string {
	r.cache.Put(address, name)
	n, _ := r.cache.Name(address)
	return n
}

// Preload fills the cache for the uncached addresses with one list call when the
// source supports it. Addresses the answer leaves out stay uncached for Resolve.
// A failed list call is logged and ignored
func (r *Resolver) Preload(ctx context.Context, addresses []string) {
	lists, ok := r.src.(ProfileLists)
	if !ok {
		return
	}
	var todo []string
	for _, a := range addresses {
		if _, cached := r.cache.Name(a); a != "" && !cached {
			todo = append(todo, a)
		}
	}
	if len(todo) == 0 {
		return
	}
	page, err := lists.ProfilesByList(ctx, todo)
	if err != nil {
		r.log.Debug().Err(err).Int("addresses", len(todo)).Msg("profile list lookup failed")
		return
	}
	for _, p := range page.Result {
		name := format.Handle(p.Handle)
		if p.Address == "" || name == "" {
			continue
		}
		if r.cache.Put(p.Address, name) {
			metrics.IdentityLookup("resolved")
		}
	}
}

// ResolveAll looks up every uncached address concurrently and returns once all
// lookups have settled. Duplicates inside one call are looked up once
func (r *Resolver) ResolveAll(ctx context.Context, addresses []string) error {
	seen := make(map[string]struct{}, len(addresses))
	g, gctx := errgroup.WithContext(ctx)
	for _, a := range addresses {
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		if _, ok := r.cache.Name(a); ok {
			continue
		}
		g.Go(func() error {
			_, err := r.Resolve(gctx, a)
			return err
		})
	}
	return g.Wait()
}

// Addresses lists the source and effective destination of every note, in order
func Addresses(ns []notes.Note) []string {
	out := make([]string, 0, 2*len(ns))
	for _, n := range ns {
		if s := n.Source(); s != "" {
			out = append(out, s)
		}
		if d := n.Destination(); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// ResolveNotes runs one resolution pass over the parties of ns
func (r *Resolver) ResolveNotes(ctx context.Context, ns []notes.Note) error {
	return r.ResolveAll(ctx, Addresses(ns))
}

// Name implements format.NameLookup over the session cache
func (r *Resolver) Name(address string) (string, bool) { return r.cache.Name(address) }
