package app

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/five82/scout/internal/imagecache"
	"github.com/five82/scout/internal/lcu"
	"github.com/five82/scout/internal/prefs"
	"github.com/five82/scout/internal/state"
)

// ConnectionResult is what callers see of a discovery: never the password.
type ConnectionResult = state.Connection

// Locator is the discovery side of lcu.Locator.
type Locator interface {
	Discover(ctx context.Context) (lcu.ConnectionInfo, error)
	DebugInfo(ctx context.Context) string
}

// Requester is the request side of lcu.Client.
type Requester interface {
	Request(ctx context.Context, conn lcu.ConnectionInfo, method, path string, body *string) (string, error)
}

// Service is the command surface shared by the CLI, the TUI and the local
// image server. It holds no connection state; every call that talks to the
// client discovers it again.
type Service struct {
	locator   Locator
	client    Requester
	cache     *imagecache.Cache
	prefsPath string
	logger    log.Logger
}

// ServiceOptions wires a Service. PrefsPath empty means the default prefs
// location.
type ServiceOptions struct {
	Locator   Locator
	Client    Requester
	Cache     *imagecache.Cache
	PrefsPath string
	Logger    log.Logger
}

// NewService returns a Service over opts.
func NewService(opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Service{
		locator:   opts.Locator,
		client:    opts.Client,
		cache:     opts.Cache,
		prefsPath: opts.PrefsPath,
		logger:    log.With(logger, "component", "service"),
	}
}

// DiscoverConnection reports whether the client is running and on which port.
func (s *Service) DiscoverConnection(ctx context.Context) ConnectionResult {
	info, err := s.locator.Discover(ctx)
	if err != nil {
		level.Debug(s.logger).Log("msg", "discovery failed", "err", err)
		return ConnectionResult{Error: err.Error()}
	}
	return ConnectionResult{OK: true, Port: info.Port}
}

// PerformAuthenticatedRequest discovers the client and issues one request.
// Discovery errors are returned as is (*lcu.NotFoundError); request errors
// are *lcu.APIError.
func (s *Service) PerformAuthenticatedRequest(ctx context.Context, method, path string, body *string) (string, error) {
	info, err := s.locator.Discover(ctx)
	if err != nil {
		return "", err
	}
	out, err := s.client.Request(ctx, info, method, path, body)
	if err != nil {
		level.Debug(s.logger).Log("msg", "request failed", "method", method, "path", path, "err", err)
		return "", err
	}
	return out, nil
}

// SetImageSourceBase switches the image origin and saves it to prefs. A
// failed save is logged; the in-memory change stands.
func (s *Service) SetImageSourceBase(base string) {
	s.cache.SetBaseURL(base)
	stored := s.cache.BaseURL()
	if err := prefs.Update(s.prefsPath, func(p *prefs.Prefs) { p.ImageAPIBase = stored }); err != nil {
		level.Warn(s.logger).Log("msg", "save image base", "err", err)
	}
}

// ImageSourceBase returns the current image origin.
func (s *Service) ImageSourceBase() string { return s.cache.BaseURL() }

// CacheDir returns the image cache directory.
func (s *Service) CacheDir() string { return s.cache.Dir() }

// FetchImage returns a cached image, fetching it on a miss.
func (s *Service) FetchImage(ctx context.Context, rel string) (imagecache.Asset, bool) {
	return s.cache.Fetch(ctx, rel)
}

// PrefetchImages warms the cache and returns how many assets were fetched.
func (s *Service) PrefetchImages(ctx context.Context, paths []string) int {
	return s.cache.Prefetch(ctx, paths)
}

// ClearImageCache empties the image cache.
func (s *Service) ClearImageCache() error {
	return s.cache.Clear()
}

// ConnectionDebug returns the locator's per-source report.
func (s *Service) ConnectionDebug(ctx context.Context) string {
	return s.locator.DebugInfo(ctx)
}
