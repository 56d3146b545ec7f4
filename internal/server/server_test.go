package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/folio/internal/logging"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/internal/render"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, files map[string]string, opts ...post.LoaderOption) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	r, err := render.New(render.Options{Sanitize: true})
	require.NoError(t, err)

	s := New(post.NewLoader(dir, opts...), r,
		WithLogger(logging.ForTest(t)),
		WithClock(func() time.Time { return fixedNow }),
	)
	return s, dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

var testPosts = map[string]string{
	"older.mdx": "---\ntitle: Older\npublishedAt: 2023-01-01\n---\nOld body",
	"newer.mdx": "---\ntitle: Newer\npublishedAt: 2024-05-01\nauthor:\n  name: Jane Doe\n  avatarUrl: /jane.png\n---\n# Heading\n\nNew body",
}

func TestServer_Index(t *testing.T) {
	s, _ := newTestServer(t, testPosts)

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `href="/blog/newer"`)
	assert.Less(t, strings.Index(body, "Newer"), strings.Index(body, "Older"), "newest first")
}

func TestServer_IndexLinksResolve(t *testing.T) {
	s, dir := newTestServer(t, map[string]string{
		"newer.mdx":   testPosts["newer.mdx"],
		"my post.mdx": "---\ntitle: Spaced\npublishedAt: 2024-02-01\n---\nbody",
		"what?.mdx":   "---\ntitle: Question\npublishedAt: 2024-03-01\n---\nbody",
		".draft.mdx":  "---\ntitle: Draft\npublishedAt: 2024-04-01\n---\nbody",
	})
	require.NoError(t, os.Symlink("user@host.1234", filepath.Join(dir, ".#newer.mdx")))

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "Question")
	assert.NotContains(t, body, "Draft")

	links := regexp.MustCompile(`href="(/blog/[^"]*)"`).FindAllStringSubmatch(body, -1)
	require.Len(t, links, 2)
	for _, m := range links {
		assert.Equal(t, http.StatusOK, get(t, s.Handler(), m[1]).Code, "link %s", m[1])
	}
}

func TestServer_Post(t *testing.T) {
	s, _ := newTestServer(t, testPosts)

	rec := get(t, s.Handler(), "/blog/newer")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<h1 id="heading">Heading</h1>`)
	assert.Contains(t, body, `alt="Jane Doe's avatar"`)
	assert.Contains(t, body, "May 1, 2024")
}

func TestServer_NotFound(t *testing.T) {
	s, _ := newTestServer(t, testPosts)

	for _, path := range []string{"/blog/missing", "/blog/..%2Fsecret", "/nope"} {
		rec := get(t, s.Handler(), path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestServer_ReloadsPerRequest(t *testing.T) {
	s, dir := newTestServer(t, testPosts)
	h := s.Handler()

	assert.Equal(t, http.StatusNotFound, get(t, h, "/blog/fresh").Code)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fresh.mdx"), []byte("---\ntitle: Fresh\n---\nhi"), 0o644))
	assert.Equal(t, http.StatusOK, get(t, h, "/blog/fresh").Code)
	assert.Contains(t, get(t, h, "/").Body.String(), "Fresh")
}

func TestServer_MalformedDocuments(t *testing.T) {
	files := map[string]string{
		"good.mdx":   testPosts["newer.mdx"],
		"broken.mdx": "no header here",
	}

	t.Run("skipped on index", func(t *testing.T) {
		s, _ := newTestServer(t, files)
		rec := get(t, s.Handler(), "/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Newer")
	})

	t.Run("fail policy is a server error", func(t *testing.T) {
		s, _ := newTestServer(t, files, post.WithMalformedPolicy(post.PolicyFail))
		assert.Equal(t, http.StatusInternalServerError, get(t, s.Handler(), "/").Code)
	})

	t.Run("requested malformed post", func(t *testing.T) {
		s, _ := newTestServer(t, files)
		assert.Equal(t, http.StatusInternalServerError, get(t, s.Handler(), "/blog/broken").Code)
	})
}

func TestServer_API(t *testing.T) {
	s, _ := newTestServer(t, testPosts)
	h := s.Handler()

	rec := get(t, h, "/api/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0]["slug"])

	rec = get(t, h, "/api/posts/older")
	require.Equal(t, http.StatusOK, rec.Code)
	var one map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, "Old body", one["content"])
	assert.Equal(t, map[string]any{"title": "Older", "publishedAt": "2023-01-01"}, one["metadata"])

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/posts/missing").Code)
}

func TestServer_APISearch(t *testing.T) {
	s, _ := newTestServer(t, testPosts)

	rec := get(t, s.Handler(), "/api/posts?q=older")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "older", list[0]["slug"])

	rec = get(t, s.Handler(), "/api/posts?q=nothing-matches")
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestServer_Healthz(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, testPosts)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok\n", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServer_RunBadAddr(t *testing.T) {
	s, _ := newTestServer(t, nil)
	err := s.Run(context.Background(), "not-an-addr")
	assert.Error(t, err)
}
