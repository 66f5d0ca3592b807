package playback

import (
	"context"
	"time"

	"github.com/llehouerou/deck/internal/player"
)

// startReporterLocked starts the position ticker for sess. The reporter
// exits when its context is cancelled, when a newer session replaces it, or
// once sess reaches its end.
func (c *Controller) startReporterLocked(gen uint64, sess player.Session) {
	ctx, cancel := context.WithCancel(context.Background())
	c.stopReport = cancel
	go c.report(ctx, gen, sess)
}

func (c *Controller) report(ctx context.Context, gen uint64, sess player.Session) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.tick(gen, sess) {
				return
			}
		}
	}
}

// tick emits one position update and reports whether the reporter should
// keep running.
func (c *Controller) tick(gen uint64, sess player.Session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation || c.session != sess {
		return false
	}
	st := sess.State()
	if sess.Ended() || !st.IsActive() {
		return false
	}
	if !st.CanPause() {
		// Paused: position does not move
		return true
	}
	c.emitPositionLocked(newPosition(sess.Position(), sess.Duration()))
	return true
}
