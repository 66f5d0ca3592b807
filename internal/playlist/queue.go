package playlist

import "math/rand/v2"

// PlayingQueue wraps a Playlist with the current-track pointer.
// Navigation is circular: the track after the last one is the first.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 until something is selected
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the current track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the current track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Track returns the track at index, or nil if out of bounds.
func (q *PlayingQueue) Track(index int) *Track {
	return q.playlist.Track(index)
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// NextIndex returns the index after the current one, wrapping to 0.
// With nothing selected yet it is the first track. Returns -1 when empty.
func (q *PlayingQueue) NextIndex() int {
	n := q.playlist.Len()
	if n == 0 {
		return -1
	}
	if q.currentIndex < 0 {
		return 0
	}
	return (q.currentIndex + 1) % n
}

// PreviousIndex returns the index before the current one, wrapping to the
// last track. With nothing selected yet it is the last track. Returns -1 when
// empty.
func (q *PlayingQueue) PreviousIndex() int {
	n := q.playlist.Len()
	if n == 0 {
		return -1
	}
	if q.currentIndex < 0 {
		return n - 1
	}
	return (q.currentIndex - 1 + n) % n
}

// Add appends tracks to the queue without changing the current index.
func (q *PlayingQueue) Add(tracks ...Track) {
	q.playlist.Add(tracks...)
}

// Shuffle reorders the queue. The current index follows the current track
// to its new position so it keeps pointing at the same item.
func (q *PlayingQueue) Shuffle(r *rand.Rand) {
	if q.playlist.Len() < 2 {
		return
	}
	cur := q.Current()
	if cur == nil {
		q.playlist.Shuffle(r)
		return
	}
	id := cur.ID
	q.playlist.Shuffle(r)
	q.currentIndex = q.playlist.IndexOf(id)
}

// Clear removes all tracks and resets the current index.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
