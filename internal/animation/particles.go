package animation

import (
	"net/http"

	"github.com/go-faster/jx"
)

// ParticlesConfig is the subset of particles.js settings the landing page
// tunes. It is served as particles.json when the build does not ship one.
type ParticlesConfig struct {
	Count        int
	DensityArea  int
	Color        string
	Shape        string
	Opacity      float64
	Size         float64
	LinkDistance int
	LinkOpacity  float64
	LinkWidth    float64
	Speed        float64
	HoverMode    string
	ClickMode    string
}

// DefaultParticlesConfig returns a white, linked, slowly drifting particle
// field that repels on hover and spawns particles on click.
func DefaultParticlesConfig() ParticlesConfig {
	return ParticlesConfig{
		Count:        80,
		DensityArea:  800,
		Color:        "#ffffff",
		Shape:        "circle",
		Opacity:      0.5,
		Size:         3,
		LinkDistance: 150,
		LinkOpacity:  0.4,
		LinkWidth:    1,
		Speed:        6,
		HoverMode:    "repulse",
		ClickMode:    "push",
	}
}

// Encode writes c in the particles.js JSON layout.
func (c ParticlesConfig) Encode(e *jx.Encoder) {
	e.ObjStart()

	e.FieldStart("particles")
	e.ObjStart()
	e.FieldStart("number")
	e.ObjStart()
	e.FieldStart("value")
	e.Int(c.Count)
	e.FieldStart("density")
	e.ObjStart()
	e.FieldStart("enable")
	e.Bool(true)
	e.FieldStart("value_area")
	e.Int(c.DensityArea)
	e.ObjEnd()
	e.ObjEnd()

	e.FieldStart("color")
	e.ObjStart()
	e.FieldStart("value")
	e.Str(c.Color)
	e.ObjEnd()

	e.FieldStart("shape")
	e.ObjStart()
	e.FieldStart("type")
	e.Str(c.Shape)
	e.ObjEnd()

	e.FieldStart("opacity")
	e.ObjStart()
	e.FieldStart("value")
	e.Float64(c.Opacity)
	e.FieldStart("random")
	e.Bool(false)
	e.ObjEnd()

	e.FieldStart("size")
	e.ObjStart()
	e.FieldStart("value")
	e.Float64(c.Size)
	e.FieldStart("random")
	e.Bool(true)
	e.ObjEnd()

	e.FieldStart("line_linked")
	e.ObjStart()
	e.FieldStart("enable")
	e.Bool(c.LinkDistance > 0)
	e.FieldStart("distance")
	e.Int(c.LinkDistance)
	e.FieldStart("color")
	e.Str(c.Color)
	e.FieldStart("opacity")
	e.Float64(c.LinkOpacity)
	e.FieldStart("width")
	e.Float64(c.LinkWidth)
	e.ObjEnd()

	e.FieldStart("move")
	e.ObjStart()
	e.FieldStart("enable")
	e.Bool(c.Speed > 0)
	e.FieldStart("speed")
	e.Float64(c.Speed)
	e.FieldStart("direction")
	e.Str("none")
	e.FieldStart("random")
	e.Bool(false)
	e.FieldStart("straight")
	e.Bool(false)
	e.FieldStart("out_mode")
	e.Str("out")
	e.ObjEnd()
	e.ObjEnd()

	e.FieldStart("interactivity")
	e.ObjStart()
	e.FieldStart("detect_on")
	e.Str("canvas")
	e.FieldStart("events")
	e.ObjStart()
	encodeEvent(e, "onhover", c.HoverMode)
	encodeEvent(e, "onclick", c.ClickMode)
	e.FieldStart("resize")
	e.Bool(true)
	e.ObjEnd()
	e.ObjEnd()

	e.FieldStart("retina_detect")
	e.Bool(true)

	e.ObjEnd()
}

func encodeEvent(e *jx.Encoder, name, mode string) {
	e.FieldStart(name)
	e.ObjStart()
	e.FieldStart("enable")
	e.Bool(mode != "")
	e.FieldStart("mode")
	e.Str(mode)
	e.ObjEnd()
}

// JSON returns c encoded as particles.json.
func (c ParticlesConfig) JSON() []byte {
	var e jx.Encoder
	c.Encode(&e)

	return e.Bytes()
}

// ParticlesHandler serves c as a JSON document.
func ParticlesHandler(c ParticlesConfig) http.Handler {
	return staticBytes("application/json", c.JSON())
}
