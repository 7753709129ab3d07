package site_test

import (
	"context"
	"io"
	"landing/internal/site"
	mocksite "landing/internal/site/mock"
	"landing/pkg/serrors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const indexHTML = `<!DOCTYPE html>
<html>
<body>
  <div id="particles-js"></div>
  <section class="hero"><h1>We build things</h1></section>
  <section class="services"><div class="service-card">Web</div></section>
  <script src="script.js"></script>
</body>
</html>`

func buildDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexHTML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.dart.js"), []byte("void main(){}"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "logo.svg"), []byte("<svg/>"), 0o600))

	return dir
}

func prepare(t *testing.T, dir string) *site.Site {
	t.Helper()

	s, err := site.Prepare(context.Background(), site.Options{
		BuildDir:       dir,
		IndexFile:      "index.html",
		ImmutablePaths: []string{"assets/"},
	})
	require.NoError(t, err)

	return s
}

func TestPrepare_Errors(t *testing.T) {
	_, err := site.Prepare(context.Background(), site.Options{
		BuildDir:  filepath.Join(t.TempDir(), "missing"),
		IndexFile: "index.html",
	})
	require.ErrorIs(t, err, serrors.ErrNotFound)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = site.Prepare(context.Background(), site.Options{BuildDir: file, IndexFile: "index.html"})
	require.ErrorIs(t, err, serrors.ErrInvalid)
}

func TestPrepare_MissingIndexIsNotFatal(t *testing.T) {
	s := prepare(t, t.TempDir())
	require.False(t, s.Has("index.html"))
}

func TestHandler_RootServesDocument(t *testing.T) {
	h := prepare(t, buildDir(t)).Handler()

	for _, target := range []string{"/", "/index.html"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, http.MethodGet, target)

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "text/html", rec.Header().Get("Content-Type"))
			require.Equal(t, indexHTML, rec.Body.String())
		})
	}
}

func TestHandler_RootIsReadPerRequest(t *testing.T) {
	dir := buildDir(t)
	h := prepare(t, dir).Handler()

	require.Equal(t, indexHTML, get(t, h, http.MethodGet, "/").Body.String())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>rebuilt</p>"), 0o600))
	require.Equal(t, "<p>rebuilt</p>", get(t, h, http.MethodGet, "/").Body.String())
	require.Equal(t, "<p>rebuilt</p>", get(t, h, http.MethodGet, "/index.html").Body.String())
}

func TestHandler_OtherPathsUseBundle(t *testing.T) {
	h := prepare(t, buildDir(t)).Handler()

	js := get(t, h, http.MethodGet, "/main.dart.js")
	require.Equal(t, http.StatusOK, js.Code)
	require.Equal(t, "void main(){}", js.Body.String())

	logo := get(t, h, http.MethodGet, "/assets/logo.svg")
	require.Equal(t, http.StatusOK, logo.Code)
	require.Equal(t, "public, max-age=31536000, immutable", logo.Header().Get("Cache-Control"))

	require.Equal(t, http.StatusNotFound, get(t, h, http.MethodGet, "/index.htm").Code)
}

func TestHandler_ForwardsUnmodified(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc := mocksite.NewMockDocument(ctrl) // no expectations: Read must not be called

	var seen *http.Request
	delegate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/contact?x=1", nil)
	rec := httptest.NewRecorder()
	site.New(doc, delegate).ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Same(t, req, seen, "delegate should receive the original request")
}

func TestHandler_ReadsDocumentOncePerRootRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc := mocksite.NewMockDocument(ctrl)
	doc.EXPECT().Read(gomock.Any()).Return([]byte("<p>a</p>"), nil)
	doc.EXPECT().Read(gomock.Any()).Return([]byte("<p>b</p>"), nil)

	h := site.New(doc, http.NotFoundHandler())

	require.Equal(t, "<p>a</p>", get(t, h, http.MethodGet, "/").Body.String())
	require.Equal(t, "<p>b</p>", get(t, h, http.MethodGet, "/index.html").Body.String())
}

func TestHandler_ReadFailureAbortsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc := mocksite.NewMockDocument(ctrl)
	doc.EXPECT().Read(gomock.Any()).Return(nil, serrors.KindOnly(serrors.ErrNotFound))

	h := site.New(doc, http.NotFoundHandler())

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		get(t, h, http.MethodGet, "/")
	})
}

func TestHandler_MissingDocumentDropsConnection(t *testing.T) {
	dir := buildDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "index.html")))

	srv := httptest.NewServer(prepare(t, dir).Handler())
	t.Cleanup(srv.Close)

	res, err := srv.Client().Get(srv.URL + "/")
	if err == nil {
		_ = res.Body.Close()
	}
	require.Error(t, err, "the client should not receive a 404 or 500 page")

	// other paths are unaffected
	res, err = srv.Client().Get(srv.URL + "/main.dart.js")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "void main(){}", string(body))
}

func TestSite_MountTakesPrecedence(t *testing.T) {
	dir := buildDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.js"), []byte("// stale"), 0o600))

	s := prepare(t, dir)
	s.Mount("GET /script.js", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("// generated"))
	}))

	require.True(t, s.Has("script.js"))
	require.Equal(t, "// generated", get(t, s.Handler(), http.MethodGet, "/script.js").Body.String())
}

func TestIsRoot(t *testing.T) {
	require.True(t, site.IsRoot("/"))
	require.True(t, site.IsRoot("/index.html"))
	require.False(t, site.IsRoot(""))
	require.False(t, site.IsRoot("/index.htm"))
	require.False(t, site.IsRoot("/docs/index.html"))
}
