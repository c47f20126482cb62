package imagecache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the asset origin used until SetBaseURL is called.
	DefaultBaseURL = "https://www.lelanation.fr"

	appID                  = "fr.lelanation.companion"
	imagePrefix            = "/images/game/"
	defaultPrefetchWorkers = 4
)

// Asset is a cached image and the content type derived from its path.
type Asset struct {
	Data        []byte
	ContentType string
}

// BaseURL is the remote origin shared by every fetch. One writer, many readers.
type BaseURL struct {
	mu    sync.RWMutex
	value string
}

// NewBaseURL returns a BaseURL holding v.
func NewBaseURL(v string) *BaseURL {
	return &BaseURL{value: normalizeBase(v)}
}

// Load returns the current value.
func (b *BaseURL) Load() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Store replaces the value.
func (b *BaseURL) Store(v string) {
	v = normalizeBase(v)
	b.mu.Lock()
	b.value = v
	b.mu.Unlock()
}

func normalizeBase(v string) string {
	return strings.TrimRight(strings.TrimSpace(v), "/")
}

// Options configures a Cache.
type Options struct {
	// Dir is the cache root. Empty uses DefaultDir().
	Dir string
	// BaseURL is the initial remote origin. Empty uses DefaultBaseURL.
	BaseURL    string
	HTTPClient *http.Client
	Logger     log.Logger
	// Registerer receives the cache counters. Nil leaves them unregistered.
	Registerer      prometheus.Registerer
	PrefetchWorkers int
}

// Cache maps relative asset paths to files under a local directory, fetching
// missing ones from the remote origin. Concurrent fetches of the same path are
// not coalesced; both write the same bytes.
type Cache struct {
	dir     string
	base    *BaseURL
	http    *http.Client
	logger  log.Logger
	metrics *metrics
	workers int
}

// New creates the cache directory if needed and returns a Cache.
func New(opts Options) (*Cache, error) {
	dir := opts.Dir
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	base := opts.BaseURL
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	workers := opts.PrefetchWorkers
	if workers <= 0 {
		workers = defaultPrefetchWorkers
	}
	return &Cache{
		dir:     dir,
		base:    NewBaseURL(base),
		http:    client,
		logger:  log.With(logger, "component", "imagecache"),
		metrics: newMetrics(opts.Registerer),
		workers: workers,
	}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

// BaseURL returns the current remote origin.
func (c *Cache) BaseURL() string { return c.base.Load() }

// SetBaseURL replaces the remote origin for subsequent fetches.
func (c *Cache) SetBaseURL(base string) {
	c.base.Store(base)
	level.Info(c.logger).Log("msg", "image base changed", "base", c.base.Load())
}

// SourceURL returns the remote URL for rel under base.
func SourceURL(base, rel string) string {
	return normalizeBase(base) + imagePrefix + rel
}

// Fetch returns the asset at rel, downloading and persisting it on a local
// miss. Remote errors and non-2xx responses are reported as a miss (false);
// callers serving images answer those with 404.
func (c *Cache) Fetch(ctx context.Context, rel string) (Asset, bool) {
	local, ok := c.localPath(rel)
	if !ok {
		c.metrics.misses.Inc()
		return Asset{}, false
	}
	contentType := ContentType(rel)

	if exists(local) {
		data, err := os.ReadFile(local)
		if err != nil {
			level.Warn(c.logger).Log("msg", "read cached asset", "path", rel, "err", err)
			c.metrics.misses.Inc()
			return Asset{}, false
		}
		c.metrics.hits.Inc()
		return Asset{Data: data, ContentType: contentType}, true
	}

	data, err := c.download(ctx, c.base.Load(), rel)
	if err != nil {
		level.Debug(c.logger).Log("msg", "fetch asset", "path", rel, "err", err)
		c.metrics.misses.Inc()
		return Asset{}, false
	}
	if err := writeAtomic(local, data); err != nil {
		c.metrics.writeFailures.Inc()
		level.Warn(c.logger).Log("msg", "persist asset", "path", rel, "err", err)
	}
	return Asset{Data: data, ContentType: contentType}, true
}

// Prefetch downloads every path not already cached and returns how many were
// newly fetched. Failures are skipped.
func (c *Cache) Prefetch(ctx context.Context, paths []string) int {
	base := c.base.Load()
	var fetched atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, rel := range dedupe(paths) {
		local, ok := c.localPath(rel)
		if !ok || exists(local) {
			continue
		}
		g.Go(func() error {
			data, err := c.download(gctx, base, rel)
			if err != nil {
				level.Debug(c.logger).Log("msg", "prefetch asset", "path", rel, "err", err)
				return nil
			}
			if err := writeAtomic(local, data); err != nil {
				c.metrics.writeFailures.Inc()
				level.Warn(c.logger).Log("msg", "persist prefetched asset", "path", rel, "err", err)
			}
			fetched.Add(1)
			c.metrics.prefetched.Inc()
			return nil
		})
	}
	_ = g.Wait()

	n := int(fetched.Load())
	level.Info(c.logger).Log("msg", "prefetch complete", "requested", len(paths), "fetched", n)
	return n
}

// Clear removes every cached asset and leaves an empty cache directory.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("remove cache dir: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("recreate cache dir: %w", err)
	}
	level.Info(c.logger).Log("msg", "image cache cleared", "dir", c.dir)
	return nil
}

func (c *Cache) download(ctx context.Context, base, rel string) ([]byte, error) {
	c.metrics.fetches.Inc()
	data, err := c.get(ctx, SourceURL(base, rel))
	if err != nil {
		c.metrics.fetchFailures.Inc()
		return nil, err
	}
	return data, nil
}

func (c *Cache) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s returned status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// localPath maps rel into the cache directory. Paths that are empty, absolute
// or escape the directory are rejected.
func (c *Cache) localPath(rel string) (string, bool) {
	if rel == "" || strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, `\`) {
		return "", false
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if !filepath.IsLocal(cleaned) {
		return "", false
	}
	return filepath.Join(c.dir, cleaned), true
}

// writeAtomic writes through a temp file so a failed write never leaves a
// truncated asset that later reads would serve.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create asset dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".partial-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename asset: %w", err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// ContentType maps a path's literal extension to a MIME type. Matching is
// case-sensitive: "icon.WEBP" is application/octet-stream.
func ContentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
