package site

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Assets serves the files of a prebuilt bundle. A request path resolves to
// the exact file, then "<path>.html", then the directory "<path>" when it
// holds an index.html; anything else is a 404. The response itself, including
// ranges, conditional requests and directory redirects, is left to
// http.ServeFileFS.
type Assets struct {
	fsys      fs.FS
	immutable []string
}

// NewAssets returns an Assets serving fsys. Files under any of the immutable
// prefixes are content-hashed and cached by clients indefinitely.
func NewAssets(fsys fs.FS, immutable ...string) *Assets {
	return &Assets{fsys: fsys, immutable: immutable}
}

func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)

		return
	}

	name, file, ok := a.resolve(r.URL.Path)
	if !ok {
		http.NotFound(w, r)

		return
	}

	if mimeType := a.contentType(file); mimeType != "" {
		w.Header().Set("Content-Type", mimeType)
	}
	w.Header().Set("Cache-Control", a.cacheControl(file))
	w.Header().Set("X-Content-Type-Options", "nosniff")

	http.ServeFileFS(w, r, a.fsys, name)
}

// resolve maps a URL path onto a name to hand to http.ServeFileFS and the
// regular file that will be sent for it. The two differ only for directories.
func (a *Assets) resolve(urlPath string) (string, string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", "", false
	}

	if a.isFile(name) {
		return name, name, true
	}
	if a.isFile(name + ".html") {
		return name + ".html", name + ".html", true
	}
	if index := path.Join(name, "index.html"); a.isFile(index) {
		return name, index, true
	}

	return "", "", false
}

func (a *Assets) isFile(name string) bool {
	info, err := fs.Stat(a.fsys, name)

	return err == nil && info.Mode().IsRegular()
}

// contentType returns the type for files whose extension is unknown, sniffed
// from their leading bytes. An empty result leaves it to http.ServeFileFS.
func (a *Assets) contentType(name string) string {
	if mime.TypeByExtension(path.Ext(name)) != "" {
		return ""
	}

	f, err := a.fsys.Open(name)
	if err != nil {
		return ""
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return ""
	}

	return mt.String()
}

func (a *Assets) cacheControl(name string) string {
	for _, prefix := range a.immutable {
		if prefix != "" && strings.HasPrefix(name, strings.TrimPrefix(prefix, "/")) {
			return "public, max-age=31536000, immutable"
		}
	}

	return "no-cache"
}

// Has reports whether name exists as a regular file in the bundle.
func (a *Assets) Has(name string) bool {
	return a.isFile(strings.TrimPrefix(name, "/"))
}
