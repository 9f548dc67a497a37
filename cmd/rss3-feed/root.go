package main

import (
	"os"
	"time"

	"github.com/benya7/rss3-widget/internal/modkit"
	"github.com/benya7/rss3-widget/internal/platform/config"
	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/platform/logger"
	feedmod "github.com/benya7/rss3-widget/internal/services/feed/module"

	"github.com/spf13/cobra"
)

const requestTimeout = 60 * time.Second

// rootFlags are shared by every subcommand
type rootFlags struct {
	envFile string
	baseURL string
	debug   bool
	output  string
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	root := &cobra.Command{
		Use:           "rss3-feed",
		Short:         "RSS3 notes feed CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch rf.output {
			case "text", "json", "yaml":
			default:
				return perr.InvalidArgf("unknown output format %q", rf.output)
			}
			if err := config.LoadDotenv(rf.envFile); err != nil {
				return err
			}
			rf.initLogger(cmd)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&rf.envFile, "env-file", ".env", "dotenv file loaded before FEED_* settings are read")
	root.PersistentFlags().StringVar(&rf.baseURL, "base-url", "", "RSS3 API base URL (overrides FEED_SERVICE_BASE_URL)")
	root.PersistentFlags().BoolVar(&rf.debug, "debug", false, "log upstream requests")
	root.PersistentFlags().StringVarP(&rf.output, "output", "o", "text", "output format: text, json or yaml")

	cobra.EnablePrefixMatching = true
	root.AddCommand(
		newFeedCmd(rf),
		newProfileCmd(rf),
		newVersionCmd(rf),
	)
	return root
}

// initLogger keeps logs on stderr so stdout stays parseable. Quiet unless --debug or LOG_LEVEL
func (rf *rootFlags) initLogger(cmd *cobra.Command) {
	lo := logger.FromEnv()
	lo.Writer = cmd.ErrOrStderr()
	if _, set := os.LookupEnv("LOG_LEVEL"); !set && !rf.debug {
		lo.Level = "warn"
	}
	logger.Init(lo)
}

// loadOptions reads FEED_* settings and applies the persistent flags on top
func (rf *rootFlags) loadOptions() (feedmod.Options, error) {
	o, err := feedmod.FromConfig(config.New())
	if err != nil {
		return o, err
	}
	if rf.baseURL != "" {
		o.ServiceBaseURL = rf.baseURL
	}
	if rf.debug {
		o.Debug = true
	}
	return o, nil
}

func newModule(o feedmod.Options) (*feedmod.Module, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return feedmod.New(modkit.Deps{}, o), nil
}
