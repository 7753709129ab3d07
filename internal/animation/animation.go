// Package animation produces the browser-side glue that brings the landing
// page to life: a particle background and a set of scroll-triggered entrance
// animations. The heavy lifting is done in the browser by particles.js and
// GSAP's ScrollTrigger; this package only renders the calls into them.
package animation

import "landing/internal/config"

// DefaultStart is the ScrollTrigger position at which animations fire: the
// trigger's top edge crossing the viewport's vertical center.
const DefaultStart = "top center"

// ParticleBackground names the element hosting the particle canvas and the
// JSON resource particles.js loads its settings from.
type ParticleBackground struct {
	ContainerID string
	ConfigPath  string
}

// ScrollAnimation moves Target from (Opacity, Y) to its natural layout state
// over Duration seconds, once Trigger crosses Start. Stagger, when positive,
// offsets the start of each element matched by Target.
type ScrollAnimation struct {
	Target   string
	Trigger  string
	Start    string
	Opacity  float64
	Y        float64
	Duration float64
	Stagger  float64
}

// Bootstrap is everything the page initializes on load.
type Bootstrap struct {
	Particles  ParticleBackground
	Animations []ScrollAnimation
}

// DefaultBootstrap returns the landing page's stock setup: particles from
// particles.json, the hero heading dropping in and the service cards rising
// one after another.
func DefaultBootstrap() Bootstrap {
	return Bootstrap{
		Particles: ParticleBackground{ContainerID: "particles-js", ConfigPath: "particles.json"},
		Animations: []ScrollAnimation{
			{Target: ".hero h1", Trigger: ".hero", Start: DefaultStart, Y: -50, Duration: 1},
			{Target: ".service-card", Trigger: ".services", Start: DefaultStart, Y: 50, Duration: 1, Stagger: 0.2},
		},
	}
}

// NewBootstrap builds the bootstrap from configuration, falling back to the
// stock animations when none are configured.
func NewBootstrap(cfg *config.Config) Bootstrap {
	b := Bootstrap{
		Particles: ParticleBackground{
			ContainerID: cfg.Site.Particles.ContainerID,
			ConfigPath:  cfg.Site.Particles.ConfigPath,
		},
	}

	if len(cfg.Site.Animations) == 0 {
		b.Animations = DefaultBootstrap().Animations

		return b
	}

	for _, a := range cfg.Site.Animations {
		start := a.Start
		if start == "" {
			start = DefaultStart
		}
		b.Animations = append(b.Animations, ScrollAnimation{
			Target:   a.Target,
			Trigger:  a.Trigger,
			Start:    start,
			Opacity:  a.Opacity,
			Y:        a.Y,
			Duration: a.Duration,
			Stagger:  a.Stagger,
		})
	}

	return b
}
