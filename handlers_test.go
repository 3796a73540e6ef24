package inkwell

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv := NewServer(newTestSite(t))
	require.NoError(t, srv.rebuild(context.Background()))
	t.Cleanup(srv.limiter.Stop)
	return srv
}

func doRequest(srv *Server, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestAPISite(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/site", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var desc Descriptor
	decodeBody(t, rec, &desc)
	assert.Equal(t, "Inkwell", desc.Site.Title)
	assert.Len(t, desc.Articles, 2)
	assert.NotEmpty(t, desc.BuildID)
}

func TestAPIMeta(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/meta", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta map[string]any
	decodeBody(t, rec, &meta)
	assert.Equal(t, "Inkwell", meta["title"])
	assert.Equal(t, "https://blog.example.com", meta["siteUrl"])
}

func TestAPITheme(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tree map[string]any
	decodeBody(t, rec, &tree)
	colors := tree["colors"].(map[string]any)
	assert.Equal(t, "#1e90ff", colors["primary"])
}

func TestAPIThemeModes(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/theme/modes/dark", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dark map[string]any
	decodeBody(t, rec, &dark)
	assert.Equal(t, "#0b0b0f", dark["background"])

	// The default mode resolves even without an explicit modes entry.
	rec = doRequest(srv, http.MethodGet, "/api/theme/modes/light", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/theme/modes/solarized", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIPlugins(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/plugins", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var plugins []map[string]any
	decodeBody(t, rec, &plugins)
	require.Len(t, plugins, 3)
	assert.Equal(t, "navigation", plugins[0]["resolve"])
}

func TestAPIArticles(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var refs []ArticleRef
	decodeBody(t, rec, &refs)
	require.Len(t, refs, 2)
	assert.Equal(t, "compose-side-effects", refs[0].Slug)
	assert.Equal(t, "2024-03-05", refs[0].DateFormatted)

	rec = doRequest(srv, http.MethodGet, "/api/articles?tag=dagger", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &refs)
	require.Len(t, refs, 1)
	assert.Equal(t, "dagger-hilt-cheatsheet", refs[0].Slug)
}

func TestAPIArticleBySlug(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/articles/dagger-hilt-cheatsheet", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var article map[string]any
	decodeBody(t, rec, &article)
	assert.Equal(t, "A Dagger Hilt Cheatsheet", article["title"])
	assert.Contains(t, article["body"], "component tree")

	rec = doRequest(srv, http.MethodGet, "/api/articles/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var errBody map[string]any
	decodeBody(t, rec, &errBody)
	assert.Equal(t, "article not found", errBody["error"])
}

func TestAPITags(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tags []string
	decodeBody(t, rec, &tags)
	assert.Equal(t, []string{"android", "compose", "dagger"}, tags)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inkwell_rebuild_total")
}

func TestReloadEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/reload", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["articles"])
}

func TestReloadEndpointRequiresToken(t *testing.T) {
	srv := newTestServer(t)
	srv.site.Config().Server.ReloadToken = "s3cret"

	rec := doRequest(srv, http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(srv, http.MethodPost, "/api/reload", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(srv, http.MethodPost, "/api/reload", "s3cret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReloadEndpointRateLimited(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 5; i++ {
		rec := doRequest(srv, http.MethodPost, "/api/reload", "")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
	rec := doRequest(srv, http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRebuildKeepsPreviousDescriptorOnFailure(t *testing.T) {
	srv := newTestServer(t)
	before := srv.descriptor()

	cfg := srv.site.Config()
	writeFile(t, filepath.Join(cfg.Content.Dir, "broken.md"), "---\ndate: 2024-01-01\n---\nno title\n")

	require.Error(t, srv.rebuild(context.Background()))
	assert.Same(t, before, srv.descriptor())
}
