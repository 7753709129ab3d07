package animation

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"text/template"

	"github.com/go-faster/errors"
)

var scriptTmpl = template.Must(template.New("script").Funcs(template.FuncMap{ //nolint: gochecknoglobals
	"str": jsString,
	"num": jsNumber,
}).Parse(`particlesJS.load({{str .Particles.ContainerID}}, {{str .Particles.ConfigPath}}, function() {
    console.log('Particles.js loaded!');
});

gsap.registerPlugin(ScrollTrigger);
{{range .Animations}}
gsap.from({{str .Target}}, {
    opacity: {{num .Opacity}},
    y: {{num .Y}},
{{- if gt .Stagger 0.0}}
    stagger: {{num .Stagger}},
{{- end}}
    duration: {{num .Duration}},
    scrollTrigger: {
        trigger: {{str .Trigger}},
        start: {{str .Start}},
    },
});
{{end}}`))

// jsString renders s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	return "'" + template.JSEscapeString(s) + "'"
}

func jsNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Render writes the page bootstrap script for b to w: one particlesJS.load
// call followed by one gsap.from registration per animation, in order.
func Render(w io.Writer, b Bootstrap) error {
	if err := scriptTmpl.Execute(w, b); err != nil {
		return errors.Wrap(err, "render bootstrap script")
	}

	return nil
}

// ScriptHandler renders b once and serves the result as JavaScript.
func ScriptHandler(b Bootstrap) (http.Handler, error) {
	var buf bytes.Buffer
	if err := Render(&buf, b); err != nil {
		return nil, err
	}

	return staticBytes("text/javascript; charset=utf-8", buf.Bytes()), nil
}

func staticBytes(contentType string, body []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write(body)
	})
}
