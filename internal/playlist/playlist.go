package playlist

import (
	"math/rand/v2"

	"github.com/llehouerou/deck/internal/player"
)

// Track is one user-added audio item. Tracks are immutable once created.
type Track struct {
	ID        int64  // identity assigned on add, stable across reorders
	Name      string // display name, usually the file name
	MediaType string // declared media type, always "audio/..."
	Source    player.Source
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IndexOf returns the position of the track with the given ID, or -1.
func (p *Playlist) IndexOf(id int64) int {
	for i := range p.tracks {
		if p.tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// Shuffle reorders the tracks with a uniform Fisher-Yates permutation
// drawn from r.
func (p *Playlist) Shuffle(r *rand.Rand) {
	r.Shuffle(len(p.tracks), func(i, j int) {
		p.tracks[i], p.tracks[j] = p.tracks[j], p.tracks[i]
	})
}
