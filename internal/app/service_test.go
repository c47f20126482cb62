package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/scout/internal/imagecache"
	"github.com/five82/scout/internal/lcu"
	"github.com/five82/scout/internal/prefs"
)

type fakeLocator struct {
	infos []lcu.ConnectionInfo
	err   error
	calls int
}

func (f *fakeLocator) Discover(context.Context) (lcu.ConnectionInfo, error) {
	f.calls++
	if f.err != nil {
		return lcu.ConnectionInfo{}, f.err
	}
	info := f.infos[0]
	if len(f.infos) > 1 {
		f.infos = f.infos[1:]
	}
	return info, nil
}

func (f *fakeLocator) DebugInfo(context.Context) string { return "debug report\n" }

type recordingRequester struct {
	conns []lcu.ConnectionInfo
	resp  string
	err   error
}

func (r *recordingRequester) Request(_ context.Context, conn lcu.ConnectionInfo, _, _ string, _ *string) (string, error) {
	r.conns = append(r.conns, conn)
	return r.resp, r.err
}

func newTestService(t *testing.T, loc Locator, req Requester, base string) (*Service, string) {
	t.Helper()
	cache, err := imagecache.New(imagecache.Options{Dir: t.TempDir(), BaseURL: base})
	require.NoError(t, err)
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	return NewService(ServiceOptions{Locator: loc, Client: req, Cache: cache, PrefsPath: prefsPath}), prefsPath
}

func TestDiscoverConnection_OmitsCredential(t *testing.T) {
	svc, _ := newTestService(t, &fakeLocator{infos: []lcu.ConnectionInfo{{Port: 51000, Password: "hunter2"}}}, nil, "")

	got := svc.DiscoverConnection(context.Background())
	assert.Equal(t, ConnectionResult{OK: true, Port: 51000}, got)
}

func TestDiscoverConnection_NotFound(t *testing.T) {
	nf := &lcu.NotFoundError{Attempts: []lcu.Attempt{{Source: "/x/lockfile", Reason: "not found"}}}
	svc, _ := newTestService(t, &fakeLocator{err: nf}, nil, "")

	got := svc.DiscoverConnection(context.Background())
	assert.False(t, got.OK)
	assert.Zero(t, got.Port)
	assert.Equal(t, nf.Error(), got.Error)
}

func TestPerformAuthenticatedRequest_RediscoversEveryCall(t *testing.T) {
	loc := &fakeLocator{infos: []lcu.ConnectionInfo{{Port: 1, Password: "a"}, {Port: 2, Password: "b"}}}
	req := &recordingRequester{resp: `{"ok":true}`}
	svc, _ := newTestService(t, loc, req, "")

	for i := 0; i < 2; i++ {
		out, err := svc.PerformAuthenticatedRequest(context.Background(), "GET", "/lol-summoner/v1/current-summoner", nil)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, out)
	}
	assert.Equal(t, 2, loc.calls)
	assert.Equal(t, []lcu.ConnectionInfo{{Port: 1, Password: "a"}, {Port: 2, Password: "b"}}, req.conns)
}

func TestPerformAuthenticatedRequest_DiscoveryFailureSkipsRequest(t *testing.T) {
	nf := &lcu.NotFoundError{}
	req := &recordingRequester{}
	svc, _ := newTestService(t, &fakeLocator{err: nf}, req, "")

	_, err := svc.PerformAuthenticatedRequest(context.Background(), "GET", "/x", nil)
	var target *lcu.NotFoundError
	require.True(t, errors.As(err, &target))
	assert.Empty(t, req.conns)
}

func TestPerformAuthenticatedRequest_PassesAPIError(t *testing.T) {
	apiErr := &lcu.APIError{Kind: lcu.KindHTTP, Status: 404, Body: "missing"}
	svc, _ := newTestService(t, &fakeLocator{infos: []lcu.ConnectionInfo{{Port: 1}}}, &recordingRequester{err: apiErr}, "")

	_, err := svc.PerformAuthenticatedRequest(context.Background(), "GET", "/x", nil)
	var target *lcu.APIError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 404, target.Status)
}

func TestSetImageSourceBase_PersistsToPrefs(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("img"))
	}))
	t.Cleanup(origin.Close)

	svc, prefsPath := newTestService(t, &fakeLocator{}, nil, "http://127.0.0.1:1")
	require.NoError(t, prefs.Save(prefsPath, prefs.Prefs{Theme: "Slate"}))

	svc.SetImageSourceBase(origin.URL + "/")
	assert.Equal(t, origin.URL, svc.ImageSourceBase())

	saved, err := prefs.Load(prefsPath)
	require.NoError(t, err)
	assert.Equal(t, origin.URL, saved.ImageAPIBase)
	assert.Equal(t, "Slate", saved.Theme)

	asset, ok := svc.FetchImage(context.Background(), "champion/Ahri.png")
	require.True(t, ok)
	assert.Equal(t, []byte("img"), asset.Data)
}

func TestSetImageSourceBase_SaveFailureKeepsBase(t *testing.T) {
	cache, err := imagecache.New(imagecache.Options{Dir: t.TempDir()})
	require.NoError(t, err)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	svc := NewService(ServiceOptions{Locator: &fakeLocator{}, Cache: cache, PrefsPath: filepath.Join(blocker, "prefs.toml")})

	svc.SetImageSourceBase("https://cdn.example")
	assert.Equal(t, "https://cdn.example", svc.ImageSourceBase())
}

func TestPrefetchAndClear(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	t.Cleanup(origin.Close)
	svc, _ := newTestService(t, &fakeLocator{}, nil, origin.URL)

	assert.Equal(t, 2, svc.PrefetchImages(context.Background(), []string{"a.png", "b.png"}))
	assert.Equal(t, 0, svc.PrefetchImages(context.Background(), []string{"a.png"}))
	require.NoError(t, svc.ClearImageCache())
	assert.DirExists(t, svc.CacheDir())
	assert.Equal(t, 1, svc.PrefetchImages(context.Background(), []string{"a.png"}))
}

func TestConnectionDebug(t *testing.T) {
	svc, _ := newTestService(t, &fakeLocator{}, nil, "")
	assert.Equal(t, "debug report\n", svc.ConnectionDebug(context.Background()))
}
