package module

import (
	"os"
	"time"

	"github.com/benya7/rss3-widget/internal/platform/config"
	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	"github.com/benya7/rss3-widget/internal/platform/net/http/bind"
	"github.com/benya7/rss3-widget/internal/services/feed/domain"

	"gopkg.in/yaml.v3"
)

const baseURLDefault = "https://pregod.rss3.dev/v1"

// Options controls the feed pipeline and its upstream clients
type Options struct {
	ServiceBaseURL  string   `json:"service_base_url" validate:"required,url"`
	Accounts        []string `json:"accounts"         validate:"dive,account"`
	Networks        []string `json:"networks"`
	Tags            []string `json:"tags"`
	Platforms       []string `json:"platforms"`
	Limit           int      `json:"limit"            validate:"min=1,max=500"`
	DisableDarkMode bool     `json:"disable_dark_mode"`
	ContainerClass  string   `json:"container_class"`
	Debug           bool     `json:"debug"`

	AuthToken         string        `json:"-"`
	Timeout           time.Duration `json:"timeout"`
	RatePerSec        float64       `json:"rps"                 validate:"min=0"`
	Burst             int           `json:"burst"               validate:"min=0"`
	MediaProbeTimeout time.Duration `json:"media_probe_timeout"`
	MaxSessions       int           `json:"max_sessions"        validate:"min=0"`
}

// widgetFile mirrors the embed script configuration keys
type widgetFile struct {
	ServiceBaseURL  string   `yaml:"serviceBaseUrl"`
	Accounts        []string `yaml:"accounts"`
	Networks        []string `yaml:"networks"`
	Tags            []string `yaml:"tags"`
	Platforms       []string `yaml:"platforms"`
	Limit           int      `yaml:"limit"`
	DisableDarkMode *bool    `yaml:"disableDarkMode"`
	Debug           *bool    `yaml:"debug"`
	Styles          struct {
		ClassNameContainer string `yaml:"classNameContainer"`
	} `yaml:"styles"`
}

// Defaults returns the built in settings
func Defaults() Options {
	return Options{
		ServiceBaseURL:    baseURLDefault,
		Limit:             domain.DefaultLimit,
		Timeout:           30 * time.Second,
		RatePerSec:        5,
		Burst:             10,
		MediaProbeTimeout: 10 * time.Second,
		MaxSessions:       1024,
	}
}

// FromConfig reads FEED_* values. A FEED_CONFIG_FILE is applied first and env wins over it
func FromConfig(cfg config.Conf) (Options, error) {
	fc := cfg.Prefix("FEED_")
	o := Defaults()

	if path := fc.MayString("CONFIG_FILE", ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return o, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read feed config %s", path)
		}
		if err := o.applyYAML(b); err != nil {
			return o, err
		}
	}

	o.ServiceBaseURL = fc.MayString("SERVICE_BASE_URL", o.ServiceBaseURL)
	o.Accounts = fc.MayCSV("ACCOUNTS", o.Accounts)
	o.Networks = fc.MayCSV("NETWORKS", o.Networks)
	o.Tags = fc.MayCSV("TAGS", o.Tags)
	o.Platforms = fc.MayCSV("PLATFORMS", o.Platforms)
	o.Limit = fc.MayInt("LIMIT", o.Limit)
	o.DisableDarkMode = fc.MayBool("DISABLE_DARK_MODE", o.DisableDarkMode)
	o.ContainerClass = fc.MayString("CONTAINER_CLASS", o.ContainerClass)
	o.Debug = fc.MayBool("DEBUG", o.Debug)
	o.AuthToken = fc.MayString("AUTH_TOKEN", o.AuthToken)
	o.Timeout = fc.MayDuration("TIMEOUT", o.Timeout)
	o.RatePerSec = fc.MayFloat64("RPS", o.RatePerSec)
	o.Burst = fc.MayInt("BURST", o.Burst)
	o.MediaProbeTimeout = fc.MayDuration("MEDIA_PROBE_TIMEOUT", o.MediaProbeTimeout)
	o.MaxSessions = fc.MayInt("MAX_SESSIONS", o.MaxSessions)

	return o, o.Validate()
}

// applyYAML overlays the non zero keys of a widget file
func (o *Options) applyYAML(b []byte) error {
	var w widgetFile
	if err := yaml.Unmarshal(b, &w); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse feed config")
	}
	if w.ServiceBaseURL != "" {
		o.ServiceBaseURL = w.ServiceBaseURL
	}
	if len(w.Accounts) > 0 {
		o.Accounts = w.Accounts
	}
	if len(w.Networks) > 0 {
		o.Networks = w.Networks
	}
	if len(w.Tags) > 0 {
		o.Tags = w.Tags
	}
	if len(w.Platforms) > 0 {
		o.Platforms = w.Platforms
	}
	if w.Limit > 0 {
		o.Limit = w.Limit
	}
	if w.DisableDarkMode != nil {
		o.DisableDarkMode = *w.DisableDarkMode
	}
	if w.Debug != nil {
		o.Debug = *w.Debug
	}
	if w.Styles.ClassNameContainer != "" {
		o.ContainerClass = w.Styles.ClassNameContainer
	}
	return nil
}

// Validate checks the settings once at startup
func (o Options) Validate() error { return bind.Struct(o) }

// Query is the default feed query built from the settings
func (o Options) Query() domain.Query {
	return domain.Query{
		Accounts: o.Accounts,
		Filters: domain.Filters{
			Networks:  o.Networks,
			Tags:      o.Tags,
			Platforms: o.Platforms,
			Limit:     o.Limit,
		},
	}
}

// Presentation is the display part of the settings
func (o Options) Presentation() domain.Presentation {
	return domain.Presentation{DisableDarkMode: o.DisableDarkMode, ContainerClass: o.ContainerClass}
}
