// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"github.com/benya7/rss3-widget/internal/platform/config"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	"github.com/benya7/rss3-widget/internal/platform/metrics"
	phttp "github.com/benya7/rss3-widget/internal/platform/net/http"
	"github.com/benya7/rss3-widget/internal/platform/net/middleware"

	"github.com/benya7/rss3-widget/internal/modkit"
	"github.com/benya7/rss3-widget/internal/modkit/httpkit"
	"github.com/benya7/rss3-widget/internal/modkit/swaggerkit"

	feedapi "github.com/benya7/rss3-widget/internal/services/api/feed/module"
	metahttp "github.com/benya7/rss3-widget/internal/services/api/meta/http"
	metamod "github.com/benya7/rss3-widget/internal/services/api/meta/module"

	// Worker feed module (owns the session registry and upstream client)
	workerfeed "github.com/benya7/rss3-widget/internal/services/feed/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	HTTPClient     *http.Client
	EnableSwagger  bool
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// StackFromConfig reads FEED_API_* middleware settings
func StackFromConfig(cfg config.Conf) httpkit.StackOptions {
	c := cfg.Prefix("FEED_API_")
	return httpkit.StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins: c.MayCSV("CORS_ORIGINS", []string{"*"}),
			MaxAge:         c.MayInt("CORS_MAX_AGE", 300),
		},
		RateLimit: middleware.RateLimitOptions{
			Requests: c.MayInt("RATE_LIMIT", 120),
			Window:   c.MayDuration("RATE_WINDOW", time.Minute),
		},
		Timeout:     c.MayDuration("TIMEOUT", 30*time.Second),
		SlowRequest: c.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
	}
}

// Mount mounts the API service onto the given router.
// The returned func closes every feed session and must run on shutdown
func Mount(r phttp.Router, opt Options) (func(), error) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:  opt.Config,
		HTTP: opt.HTTPClient,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// Construct the WORKER feed module first and extract its ports
	workerFeed, err := workerfeed.NewFromConfig(deps)
	if err != nil {
		return nil, err
	}
	wp := modkit.MustPorts[workerfeed.Ports](workerFeed)

	// Inject them into the API feed module
	apiFeed := feedapi.New(
		deps,
		modkit.WithSwagger(opt.EnableSwagger),
		modkit.WithPorts(feedapi.Ports{
			Sessions: wp.Sessions,
			Config:   wp.Config,
			Names:    wp.Identities,
		}),
	)

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Checks:   []metahttp.Check{{Name: "rss3", Ping: wp.Ping}},
		Sessions: workerFeed.Sessions().Len,
	}))

	mods := []modkit.Module{meta, workerFeed, apiFeed}

	// scrape endpoint stays outside the versioned stack so it is neither rate limited nor counted
	r.Handle("/metrics", metrics.Handler())
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	return workerFeed.Close, nil
}
