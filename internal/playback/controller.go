// internal/playback/controller.go
package playback

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/llehouerou/deck/internal/player"
	"github.com/llehouerou/deck/internal/playlist"
	"github.com/llehouerou/deck/internal/upload"
)

// Controller owns the playlist, the current-track pointer and the single
// active playback session.
//
// All state is guarded by mu. Session end notifications and position ticks
// arrive from other goroutines and carry the generation of the session they
// belong to; anything from an older generation is dropped under the lock, so
// a superseded session can never touch the current state.
type Controller struct {
	mu sync.Mutex

	backend     player.Backend
	queue       *playlist.PlayingQueue
	session     player.Session
	generation  uint64
	stopReport  context.CancelFunc
	loop        bool
	volume      float64
	nextID      int64
	rng         *rand.Rand
	interval    time.Duration
	placeholder Placeholder

	subs       []*Subscription
	subsClosed bool
	subsMu     sync.RWMutex

	closed bool
}

// AddResult reports the outcome of AddTracks.
type AddResult struct {
	Added   []Track
	Skipped []upload.FileEntry
	Errors  []error // one ErrUnsupportedFile per skipped entry
}

// New creates a controller playing through backend.
func New(backend player.Backend, opts ...Option) *Controller {
	c := &Controller{
		backend:     backend,
		queue:       playlist.NewQueue(),
		volume:      1,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // shuffling, not crypto
		interval:    DefaultPositionInterval,
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddTracks appends every audio entry to the playlist. Entries whose media
// type is not audio/* are skipped and reported. Playback is not started.
func (c *Controller) AddTracks(entries ...upload.FileEntry) AddResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res AddResult
	if c.closed {
		res.Skipped = entries
		for range entries {
			res.Errors = append(res.Errors, ErrClosed)
		}
		return res
	}

	for _, e := range entries {
		if !upload.IsAudio(e.MediaType) || e.Source == nil {
			res.Skipped = append(res.Skipped, e)
			res.Errors = append(res.Errors, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFile, e.Name, e.MediaType))
			continue
		}
		c.nextID++
		t := playlist.Track{ID: c.nextID, Name: e.Name, MediaType: e.MediaType, Source: e.Source}
		c.queue.Add(t)
		res.Added = append(res.Added, fromPlaylistTrack(t))
	}

	if len(res.Added) > 0 {
		c.emitQueueLocked()
	}
	return res
}

// PlayAt stops the current session and starts playing the track at index.
func (c *Controller) PlayAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.playAtLocked(index)
}

func (c *Controller) playAtLocked(index int) error {
	n := c.queue.Len()
	if n == 0 {
		return ErrEmptyPlaylist
	}
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %d (playlist has %d tracks)", ErrInvalidIndex, index, n)
	}

	prevState := c.stateLocked()
	prevIndex := c.queue.CurrentIndex()
	var prevTrack *Track
	if cur := c.queue.Current(); cur != nil {
		t := fromPlaylistTrack(*cur)
		prevTrack = &t
	}

	// Stop, detach and release the old session before opening the next one
	c.releaseSessionLocked()

	track := c.queue.JumpTo(index)
	c.generation++
	gen := c.generation

	sess, err := c.backend.Open(track.Source, track.MediaType, func(err error) {
		c.handleEnded(gen, err)
	})
	if err != nil {
		t := fromPlaylistTrack(*track)
		err = fmt.Errorf("%w %q: %w", ErrDecodeFailure, track.Name, err)
		c.emitErrorLocked(ErrorEvent{Operation: OpPlay, Track: &t, Err: err})
		c.emitStateLocked(prevState, StateStopped)
		return err
	}

	sess.SetVolume(c.volume)
	sess.SetLoop(c.loop)
	sess.Start()
	c.session = sess
	c.startReporterLocked(gen, sess)

	now, _ := c.nowPlayingLocked()
	c.emitTrackLocked(TrackChange{
		Previous:      prevTrack,
		Current:       now,
		PreviousIndex: prevIndex,
		Index:         index,
	})
	c.emitStateLocked(prevState, StatePlaying)
	return nil
}

// handleEnded runs when a session plays to its end.
func (c *Controller) handleEnded(gen uint64, endErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation || c.session == nil {
		return
	}

	current := c.queue.CurrentIndex()
	if endErr != nil {
		var t *Track
		if cur := c.queue.Current(); cur != nil {
			tr := fromPlaylistTrack(*cur)
			t = &tr
		}
		c.emitErrorLocked(ErrorEvent{
			Operation: OpDecode,
			Track:     t,
			Err:       fmt.Errorf("%w: %w", ErrDecodeFailure, endErr),
		})
	}

	next := c.queue.NextIndex()
	if c.loop {
		// The platform loop normally keeps the session alive; restart the
		// same track if it drained anyway.
		next = current
	}
	if endErr != nil && next == current {
		// Replaying a broken track would fail forever
		c.releaseSessionLocked()
		c.emitStateLocked(StatePlaying, StateStopped)
		return
	}
	_ = c.playAtLocked(next)
}

// TogglePause pauses a playing session or resumes a paused one.
func (c *Controller) TogglePause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.session == nil {
		return ErrNoActiveSession
	}

	st := c.session.State()
	switch {
	case st.CanPause():
		c.session.Pause()
		c.emitStateLocked(StatePlaying, StatePaused)
	case st.CanResume():
		c.session.Resume()
		c.emitStateLocked(StatePaused, StatePlaying)
	default:
		return ErrNoActiveSession
	}
	return nil
}

// Seek moves playback to fraction (clamped to [0, 1]) of the track duration.
func (c *Controller) Seek(fraction float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.session == nil || c.session.Ended() {
		return ErrNoActiveSession
	}
	d := c.session.Duration()
	if d <= 0 {
		return ErrNotReady
	}

	fraction = player.ClampLevel(fraction)
	target := time.Duration(fraction * float64(d))
	if err := c.session.SeekTo(target); err != nil {
		err = fmt.Errorf("seek to %v: %w", target, err)
		c.emitErrorLocked(ErrorEvent{Operation: OpSeek, Track: c.currentTrackLocked(), Err: err})
		return err
	}
	c.emitPositionLocked(newPosition(c.session.Position(), d))
	return nil
}

// SetVolume sets the output level (clamped to [0, 1]). The level is kept for
// every later session, so it survives track changes.
func (c *Controller) SetVolume(level float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.volume = player.ClampLevel(level)
	if c.session != nil {
		c.session.SetVolume(c.volume)
	}
	c.emitModeLocked()
}

// Next plays the following track, wrapping to the first.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.queue.IsEmpty() {
		return ErrEmptyPlaylist
	}
	return c.playAtLocked(c.queue.NextIndex())
}

// Previous plays the preceding track, wrapping to the last.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.queue.IsEmpty() {
		return ErrEmptyPlaylist
	}
	return c.playAtLocked(c.queue.PreviousIndex())
}

// Shuffle randomly reorders the playlist. The current index follows the
// playing track, so playback continuity survives the reorder.
func (c *Controller) Shuffle() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.queue.IsEmpty() {
		return ErrEmptyPlaylist
	}
	if c.queue.Len() == 1 {
		return nil
	}
	c.queue.Shuffle(c.rng)
	c.emitQueueLocked()
	return nil
}

// ToggleRepeat flips single-track repeat and returns the new setting.
func (c *Controller) ToggleRepeat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.loop
	}
	c.setRepeatLocked(!c.loop)
	return c.loop
}

// SetRepeat sets single-track repeat.
func (c *Controller) SetRepeat(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.loop == enabled {
		return
	}
	c.setRepeatLocked(enabled)
}

func (c *Controller) setRepeatLocked(enabled bool) {
	c.loop = enabled
	if c.session != nil {
		c.session.SetLoop(enabled)
	}
	c.emitModeLocked()
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	if c.session == nil {
		return StateStopped
	}
	return fromPlayerState(c.session.State())
}

// Tracks returns a copy of the playlist.
func (c *Controller) Tracks() []Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracksLocked()
}

func (c *Controller) tracksLocked() []Track {
	tracks := c.queue.Tracks()
	result := make([]Track, len(tracks))
	for i, t := range tracks {
		result[i] = fromPlaylistTrack(t)
	}
	return result
}

// Len returns the number of tracks in the playlist.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

// CurrentIndex returns the current track index (-1 before anything played).
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.CurrentIndex()
}

// CurrentTrack returns the current track, or nil if none.
func (c *Controller) CurrentTrack() *Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTrackLocked()
}

func (c *Controller) currentTrackLocked() *Track {
	cur := c.queue.Current()
	if cur == nil {
		return nil
	}
	t := fromPlaylistTrack(*cur)
	return &t
}

// NowPlaying returns display metadata for the current track.
func (c *Controller) NowPlaying() (NowPlaying, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nowPlayingLocked()
}

func (c *Controller) nowPlayingLocked() (NowPlaying, bool) {
	cur := c.queue.Current()
	if cur == nil {
		return NowPlaying{Index: -1}, false
	}
	return NowPlaying{
		Index:  c.queue.CurrentIndex(),
		Track:  fromPlaylistTrack(*cur),
		Artist: c.placeholder.Artist,
		Album:  c.placeholder.Album,
		Cover:  c.placeholder.Cover,
	}, true
}

// Position reads the live position of the active session.
func (c *Controller) Position() PositionChange {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return PositionChange{}
	}
	return newPosition(c.session.Position(), c.session.Duration())
}

// Volume returns the current volume level.
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// Repeat returns whether single-track repeat is enabled.
func (c *Controller) Repeat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loop
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.subsClosed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close stops playback, releases every track source and ends all
// subscriptions. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.releaseSessionLocked()

	var firstErr error
	for _, t := range c.queue.Tracks() {
		if closer, ok := t.Source.(io.Closer); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	c.queue.Clear()
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsClosed = true
	c.subsMu.Unlock()

	return firstErr
}

// releaseSessionLocked stops the reporter, detaches and closes the session.
func (c *Controller) releaseSessionLocked() {
	if c.stopReport != nil {
		c.stopReport()
		c.stopReport = nil
	}
	if c.session != nil {
		_ = c.session.Close()
		c.session = nil
	}
	// Invalidate callbacks still in flight for the released session
	c.generation++
}
