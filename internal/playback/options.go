package playback

import (
	"math/rand/v2"
	"time"

	"github.com/llehouerou/deck/internal/player"
)

// DefaultPositionInterval is roughly one display refresh.
const DefaultPositionInterval = 50 * time.Millisecond

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used by Shuffle. A seeded source makes
// shuffles reproducible.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithPositionInterval sets how often position updates are emitted while a
// track plays.
func WithPositionInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithPlaceholder sets the fixed now-playing metadata.
func WithPlaceholder(p Placeholder) Option {
	return func(c *Controller) {
		if p.Artist != "" {
			c.placeholder.Artist = p.Artist
		}
		if p.Album != "" {
			c.placeholder.Album = p.Album
		}
		if p.Cover != "" {
			c.placeholder.Cover = p.Cover
		}
	}
}

// WithVolume sets the initial volume level.
func WithVolume(level float64) Option {
	return func(c *Controller) {
		c.volume = player.ClampLevel(level)
	}
}

// WithRepeat sets the initial repeat flag.
func WithRepeat(enabled bool) Option {
	return func(c *Controller) {
		c.loop = enabled
	}
}
