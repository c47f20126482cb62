package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/five82/scout/internal/config"
	"github.com/five82/scout/internal/imagecache"
	"github.com/five82/scout/internal/lcu"
	"github.com/five82/scout/internal/prefs"
	"github.com/five82/scout/internal/server"
	"github.com/five82/scout/internal/state"
	"github.com/five82/scout/internal/ui"
)

// Options configure Bootstrap.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/scout/prefs.toml
	Logger     log.Logger
	// Config, when set, is used as is and ConfigPath is not read.
	Config *config.Config
	// Locator overrides discovery; nil builds one from config.
	Locator Locator
}

// Runtime is a fully wired scout instance.
type Runtime struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Service   *Service
	Registry  *prometheus.Registry
	Logger    log.Logger
}

// Bootstrap loads config and prefs and builds the Service. The image base
// comes from prefs, then config (which already folds in the environment),
// then the built-in default.
func Bootstrap(opts Options) (*Runtime, error) {
	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	base := userPrefs.ImageAPIBase
	if base == "" {
		base = cfg.ImageAPIBase
	}
	cache, err := imagecache.New(imagecache.Options{
		Dir:        cfg.CacheDir,
		BaseURL:    base,
		Logger:     logger,
		Registerer: registry,
	})
	if err != nil {
		return nil, fmt.Errorf("init image cache: %w", err)
	}

	locator := opts.Locator
	if locator == nil {
		locator = lcu.NewLocator(lcu.LocatorOptions{
			Lockfiles:    cfg.Lockfiles,
			ProcessNames: cfg.ProcessNames,
		})
	}

	svc := NewService(ServiceOptions{
		Locator:   locator,
		Client:    lcu.NewClient(),
		Cache:     cache,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
	return &Runtime{
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Service:   svc,
		Registry:  registry,
		Logger:    logger,
	}, nil
}

// Watch runs the status TUI until the user quits or ctx is cancelled.
func (rt *Runtime) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	store := &state.Store{}

	// Populate the store before the first frame.
	Refresh(ctx, store, rt.Service, rt.Logger)
	StartPoller(ctx, store, rt.Service, interval, rt.Logger)

	return ui.Run(ui.Options{
		Context:   ctx,
		Backend:   rt.Service,
		Store:     store,
		LogPath:   rt.Config.LogPath(),
		PollTick:  interval,
		ThemeName: rt.Prefs.Theme,
		PrefsPath: rt.PrefsPath,
		Logger:    rt.Logger,
	})
}

// Serve runs the local image endpoint until ctx is cancelled.
func (rt *Runtime) Serve(ctx context.Context) error {
	handler := server.NewHandler(rt.Service, server.HandlerOptions{
		Gatherer:   rt.Registry,
		Registerer: rt.Registry,
		Logger:     rt.Logger,
	}, server.NewRouter())
	return server.ListenAndServe(ctx, rt.Config.ListenAddr, handler, rt.Logger)
}
