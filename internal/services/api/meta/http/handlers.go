// Package http serves the meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/benya7/rss3-widget/internal/core/version"
	"github.com/benya7/rss3-widget/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// Check is a named readiness probe. A nil Ping reports skipped
type Check struct {
	Name string
	Ping func(context.Context) error
}

// Deps feed the handlers
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
	// Sessions counts live feed sessions, optional
	Sessions func() int
}

// readyTimeout bounds all probes together
const readyTimeout = 5 * time.Second

// Register mounts health, ready, version and service
func Register(r httpkit.Router, d Deps) {
	httpkit.Get(r, "/health", d.health)
	httpkit.Get(r, "/ready", d.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", d.service)
}

// HealthResponse says the process is up
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"rss3-feed-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is one probe result: ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"            example:"rss3"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"rss3 ping failed: dial tcp: i/o timeout"`
}

// ReadyResponse rolls the probes up: fail if any failed, degraded if any skipped, ok otherwise
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse is uptime and load
type ServiceResponse struct {
	Name     string `json:"name"     example:"rss3-feed-api"`
	Started  string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Uptime   int64  `json:"uptime"   example:"300"`
	Sessions int    `json:"sessions" example:"3"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (d Deps) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: d.ServiceName, Started: stamp(d.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness with dependency probes. Always 200; read status
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (d Deps) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := make([]ReadyCheck, len(d.Checks))
	var g errgroup.Group
	for i, c := range d.Checks {
		checks[i] = ReadyCheck{Name: c.Name, Status: "skipped"}
		if c.Ping == nil {
			continue
		}
		g.Go(func() error {
			if err := c.Ping(ctx); err != nil {
				checks[i].Status, checks[i].Error = "fail", err.Error()
				return nil
			}
			checks[i].Status = "ok"
			return nil
		})
	}
	_ = g.Wait()

	overall := "ok"
	for _, c := range checks {
		if c.Status == "fail" {
			overall = "fail"
			break
		}
		if c.Status == "skipped" {
			overall = "degraded"
		}
	}
	return ReadyResponse{Status: overall, Checks: checks, Now: stamp(time.Now())}, nil
}

// @Summary Uptime and live feed sessions
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (d Deps) service(*http.Request) (any, error) {
	out := ServiceResponse{
		Name:    d.ServiceName,
		Started: stamp(d.StartedAt),
		Uptime:  int64(time.Since(d.StartedAt) / time.Second),
	}
	if d.Sessions != nil {
		out.Sessions = d.Sessions()
	}
	return out, nil
}
