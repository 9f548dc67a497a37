// @title         RSS3 Feed API
// @version       0.1.0
// @description   Session based RSS3 notes feed for embeddable widgets

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benya7/rss3-widget/internal/platform/config"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	phttp "github.com/benya7/rss3-widget/internal/platform/net/http"

	"github.com/benya7/rss3-widget/internal/services/api"
)

func main() {
	// .env is optional; real env always wins
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Panic().Err(err).Msg("load .env failed")
	}

	root := config.New()
	apiCfg := root.Prefix("FEED_API_")
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := phttp.NewServer(apiCfg)
	closeFeeds, err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Stack:          api.StackFromConfig(root),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	// Run returns once ctx ends and in-flight requests drain
	err = srv.Run(ctx)
	closeFeeds()
	if err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("shut down")
}
