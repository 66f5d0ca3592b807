package playback

// Emit helpers are called with c.mu held. Sends never block.

func (c *Controller) broadcast(send func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		send(sub)
	}
}

func (c *Controller) emitStateLocked(prev, cur State) {
	if prev == cur {
		return
	}
	e := StateChange{Previous: prev, Current: cur}
	c.broadcast(func(s *Subscription) { s.sendState(e) })
}

func (c *Controller) emitTrackLocked(e TrackChange) {
	c.broadcast(func(s *Subscription) { s.sendTrack(e) })
}

func (c *Controller) emitQueueLocked() {
	index := c.queue.CurrentIndex()
	c.broadcast(func(s *Subscription) {
		// Each subscriber gets its own copy
		s.sendQueue(QueueChange{Tracks: c.tracksLocked(), Index: index})
	})
}

func (c *Controller) emitModeLocked() {
	e := ModeChange{Repeat: c.loop, Volume: c.volume}
	c.broadcast(func(s *Subscription) { s.sendMode(e) })
}

func (c *Controller) emitPositionLocked(e PositionChange) {
	c.broadcast(func(s *Subscription) { s.sendPosition(e) })
}

func (c *Controller) emitErrorLocked(e ErrorEvent) {
	c.broadcast(func(s *Subscription) { s.sendError(e) })
}
