package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/scout/internal/imagecache"
	"github.com/five82/scout/internal/state"
)

type fakeBackend struct {
	assets map[string]imagecache.Asset
	conn   state.Connection
	asked  []string
}

func (f *fakeBackend) FetchImage(_ context.Context, rel string) (imagecache.Asset, bool) {
	f.asked = append(f.asked, rel)
	a, ok := f.assets[rel]
	return a, ok
}

func (f *fakeBackend) DiscoverConnection(context.Context) state.Connection { return f.conn }

func newTestServer(t *testing.T, b Backend) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	h := NewHandler(b, HandlerOptions{Gatherer: reg, Registerer: reg}, NewRouter())
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, reg
}

func TestImage_Hit(t *testing.T) {
	b := &fakeBackend{assets: map[string]imagecache.Asset{
		"champion/Ahri.png": {Data: []byte("png-bytes"), ContentType: "image/png"},
	}}
	srv, _ := newTestServer(t, b)

	resp, err := http.Get(srv.URL + "/images/champion/Ahri.png")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, []string{"champion/Ahri.png"}, b.asked)
}

func TestImage_MissIs404(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})

	resp, err := http.Get(srv.URL + "/images/item/9999.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestImage_Head(t *testing.T) {
	b := &fakeBackend{assets: map[string]imagecache.Asset{
		"a.webp": {Data: []byte("webp"), ContentType: "image/webp"},
	}}
	srv, _ := newTestServer(t, b)

	resp, err := http.Head(srv.URL + "/images/a.webp")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "4", resp.Header.Get("Content-Length"))
}

func TestConnection_JSONWithoutPassword(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{conn: state.Connection{OK: true, Port: 51234}})

	resp, err := http.Get(srv.URL + "/connection")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, map[string]any{"ok": true, "port": float64(51234)}, got)
}

func TestMetrics_RecordsRoutes(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `scout_request_duration_seconds_count{method="GET",route="Health",status_code="200"} 1`)
}

func TestUnknownRouteIs404(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})
	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListenAndServe_RejectsNonLoopback(t *testing.T) {
	for _, addr := range []string{"0.0.0.0:7489", "192.168.1.10:7489", ":7489", "example.com:80", "nonsense"} {
		err := ListenAndServe(context.Background(), addr, http.NotFoundHandler(), nil)
		assert.Error(t, err, addr)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("up"))
		}), nil)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.HasPrefix(string(body), "up"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
