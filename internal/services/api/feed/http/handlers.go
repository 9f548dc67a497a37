// Package http provides http transport for feed sessions
package http

import (
	stdhttp "net/http"

	"github.com/benya7/rss3-widget/internal/core/classify"
	"github.com/benya7/rss3-widget/internal/core/notes"
	"github.com/benya7/rss3-widget/internal/modkit/httpkit"
	"github.com/benya7/rss3-widget/internal/modkit/swaggerkit"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	"github.com/benya7/rss3-widget/internal/platform/net/http/bind"
	pnet "github.com/benya7/rss3-widget/internal/platform/net"
	"github.com/benya7/rss3-widget/internal/services/api/feed/domain"
	feeddom "github.com/benya7/rss3-widget/internal/services/feed/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Sessions feeddom.SessionsPort
	Config   feeddom.ConfigPort
	Names    domain.NamePort
}

type handlers struct{ deps Deps }

// Register mounts the feed routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/config", h.config)
	httpkit.Get(r, "/verbs", h.verb)
	httpkit.Get(r, "/profiles/{account}", h.profile)
	httpkit.PostJSON[domain.OpenInput](r, "/", h.open)
	httpkit.Get(r, "/{id}", h.state)
	httpkit.Post(r, "/{id}/more", h.more)
	httpkit.Delete(r, "/{id}", h.close)
}

// Operations lists the routes for the generated API doc, relative to prefix
func Operations(prefix string) []swaggerkit.Operation {
	const tag = "feeds"
	return []swaggerkit.Operation{
		{Method: stdhttp.MethodGet, Path: prefix + "/config", Summary: "Widget presentation and default query", Tag: tag},
		{Method: stdhttp.MethodGet, Path: prefix + "/verbs", Summary: "Classifier verb for category and subtype", Tag: tag},
		{Method: stdhttp.MethodGet, Path: prefix + "/profiles/{account}", Summary: "Resolve an address to its display name", Tag: tag},
		{Method: stdhttp.MethodPost, Path: prefix, Summary: "Open a feed session and fetch its first page", Tag: tag, Body: domain.OpenInput{}},
		{Method: stdhttp.MethodGet, Path: prefix + "/{id}", Summary: "Current feed state", Tag: tag},
		{Method: stdhttp.MethodPost, Path: prefix + "/{id}/more", Summary: "Append the next page", Tag: tag},
		{Method: stdhttp.MethodDelete, Path: prefix + "/{id}", Summary: "Close a feed session", Tag: tag},
	}
}

// withSession tags the request scoped logger with the session id
func withSession(r *stdhttp.Request, id string) *stdhttp.Request {
	ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), id)
	return r.WithContext(pnet.WithRequest(ctx, "", id))
}

// swagger:route GET /feeds/config Feeds feedConfig
// @Summary Widget presentation and default query
// @Tags feeds
// @Produce json
// @Success 200 {object} domain.ConfigOutput "ok"
// @Router /feeds/config [get]
func (h *handlers) config(_ *stdhttp.Request) (any, error) {
	return domain.ConfigOutput{
		Presentation: h.deps.Config.Presentation(),
		Defaults:     h.deps.Config.Defaults(),
	}, nil
}

// swagger:route POST /feeds Feeds feedOpen
// @Summary Open a feed session and fetch its first page
// @Tags feeds
// @Accept json
// @Produce json
// @Param payload body domain.OpenInput true "Open"
// @Success 201 {object} feeddom.State "created"
// @Router /feeds [post]
func (h *handlers) open(r *stdhttp.Request, in domain.OpenInput) (any, error) {
	st, err := h.deps.Sessions.Open(r.Context(), in.Query())
	if err != nil {
		return nil, err
	}
	log := logger.C(r.Context())
	log.Info().Str("session_id", st.ID).Int("items", len(st.Items)).Msg("feed session opened")
	return httpkit.Created(st), nil
}

// swagger:route GET /feeds/{id} Feeds feedState
// @Summary Current feed state
// @Tags feeds
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} feeddom.State "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /feeds/{id} [get]
func (h *handlers) state(r *stdhttp.Request) (any, error) {
	return h.deps.Sessions.State(httpkit.Param(r, "id"))
}

// swagger:route POST /feeds/{id}/more Feeds feedMore
// @Summary Append the next page
// @Tags feeds
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} feeddom.State "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /feeds/{id}/more [post]
func (h *handlers) more(r *stdhttp.Request) (any, error) {
	id := httpkit.Param(r, "id")
	r = withSession(r, id)
	st, err := h.deps.Sessions.LoadMore(r.Context(), id)
	if err != nil {
		log := logger.C(r.Context())
		log.Warn().Err(err).Msg("feed load more failed")
		return nil, err
	}
	return st, nil
}

// swagger:route DELETE /feeds/{id} Feeds feedClose
// @Summary Close a feed session
// @Tags feeds
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} domain.ClosedOutput "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /feeds/{id} [delete]
func (h *handlers) close(r *stdhttp.Request) (any, error) {
	id := httpkit.Param(r, "id")
	if err := h.deps.Sessions.Close(id); err != nil {
		return nil, err
	}
	return domain.ClosedOutput{ID: id, Closed: true}, nil
}

// swagger:route GET /feeds/verbs Feeds feedVerb
// @Summary Classifier verb for category and subtype
// @Tags feeds
// @Produce json
// @Param category query string true "category (tag)"
// @Param subtype query string false "subtype (type)"
// @Success 200 {object} domain.VerbOutput "ok"
// @Router /feeds/verbs [get]
func (h *handlers) verb(r *stdhttp.Request) (any, error) {
	q := domain.VerbQuery{
		Category: r.URL.Query().Get("category"),
		Subtype:  r.URL.Query().Get("subtype"),
	}
	if err := bind.Struct(q); err != nil {
		return nil, err
	}
	return domain.VerbOutput{
		Category: q.Category,
		Subtype:  q.Subtype,
		Verb:     classify.Verb(notes.Category(q.Category), notes.Subtype(q.Subtype)),
	}, nil
}

// swagger:route GET /feeds/profiles/{account} Feeds feedProfile
// @Summary Resolve an address to its display name
// @Tags feeds
// @Produce json
// @Param account path string true "address or handle"
// @Success 200 {object} domain.ProfileOutput "ok"
// @Router /feeds/profiles/{account} [get]
func (h *handlers) profile(r *stdhttp.Request) (any, error) {
	q := domain.ProfileQuery{Account: httpkit.Param(r, "account")}
	if err := bind.Struct(q); err != nil {
		return nil, err
	}
	name, err := h.deps.Names.Resolve(r.Context(), q.Account)
	if err != nil {
		return nil, err
	}
	return domain.ProfileOutput{Address: q.Account, Name: name}, nil
}
