package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/five82/scout/internal/imagecache"
	"github.com/five82/scout/internal/state"
)

// Route names.
const (
	Image      = "Image"
	Connection = "Connection"
	Health     = "Health"
	Metrics    = "Metrics"
)

// Backend is what the HTTP surface needs from the service.
type Backend interface {
	FetchImage(ctx context.Context, rel string) (imagecache.Asset, bool)
	DiscoverConnection(ctx context.Context) state.Connection
}

// NewRouter declares the routes without handlers.
func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.NewRoute().Name(Image).Methods("GET", "HEAD").Path("/images/{path:.+}")
	r.NewRoute().Name(Connection).Methods("GET").Path("/connection")
	r.NewRoute().Name(Health).Methods("GET").Path("/healthz")
	r.NewRoute().Name(Metrics).Methods("GET").Path("/metrics")
	return r
}

// HandlerOptions configures NewHandler. Nil Gatherer serves the default
// registry; nil Registerer leaves request metrics unregistered.
type HandlerOptions struct {
	Gatherer   prometheus.Gatherer
	Registerer prometheus.Registerer
	Logger     log.Logger
}

// NewHandler binds handlers to the routes declared by NewRouter.
func NewHandler(b Backend, opts HandlerOptions, r *mux.Router) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	h := &handler{backend: b, logger: log.With(logger, "component", "server")}

	r.Get(Image).HandlerFunc(h.image)
	r.Get(Connection).HandlerFunc(h.connection)
	r.Get(Health).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get(Metrics).Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Use(instrument(newRequestDuration(opts.Registerer)))
	return r
}

type handler struct {
	backend Backend
	logger  log.Logger
}

func (h *handler) image(w http.ResponseWriter, r *http.Request) {
	rel := mux.Vars(r)["path"]
	w.Header().Set("Access-Control-Allow-Origin", "*")

	asset, ok := h.backend.FetchImage(r.Context(), rel)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(asset.Data)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(asset.Data); err != nil {
		level.Debug(h.logger).Log("msg", "write image", "path", rel, "err", err)
	}
}

func (h *handler) connection(w http.ResponseWriter, r *http.Request) {
	conn := h.backend.DiscoverConnection(r.Context())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(conn); err != nil {
		level.Debug(h.logger).Log("msg", "write connection", "err", err)
	}
}

func newRequestDuration(reg prometheus.Registerer) *prometheus.HistogramVec {
	return promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "scout",
		Name:      "request_duration_seconds",
		Help:      "Time (in seconds) spent serving HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status_code"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func instrument(duration *prometheus.HistogramVec) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := "unnamed"
			if current := mux.CurrentRoute(r); current != nil && current.GetName() != "" {
				route = current.GetName()
			}
			duration.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Observe(time.Since(begin).Seconds())
		})
	}
}

// ListenAndServe binds addr, which must be a loopback address, and serves h
// until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger log.Logger) error {
	if err := checkLoopback(addr); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return Serve(ctx, ln, h, logger)
}

// Serve runs h on ln and shuts down gracefully when ctx is cancelled.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       15 * time.Second,
	}

	level.Info(logger).Log("msg", "starting HTTP server", "addr", ln.Addr().String())
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		level.Warn(logger).Log("msg", "HTTP server graceful shutdown failed", "err", err)
		return fmt.Errorf("shutdown: %w", err)
	}
	level.Info(logger).Log("msg", "HTTP server stopped")
	return nil
}

func checkLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("parse listen address %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("listen address %q is not loopback", addr)
	}
	return nil
}
