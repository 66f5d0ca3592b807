package playback

import "github.com/llehouerou/deck/internal/playlist"

// Track represents a track in the playlist.
// This is a copy of the data, not a reference to playlist.Track.
type Track struct {
	ID        int64
	Name      string
	MediaType string
}

func fromPlaylistTrack(t playlist.Track) Track {
	return Track{ID: t.ID, Name: t.Name, MediaType: t.MediaType}
}

// Placeholder holds the fixed now-playing metadata shown for every track.
// Tags are never read, so artist, album and cover are constant.
type Placeholder struct {
	Artist string
	Album  string
	Cover  string
}

// DefaultPlaceholder is used when no placeholder is configured.
var DefaultPlaceholder = Placeholder{
	Artist: "Unknown Artist",
	Album:  "Unknown Album",
	Cover:  "♫",
}

// NowPlaying is the metadata of the current track for display.
type NowPlaying struct {
	Index  int
	Track  Track
	Artist string
	Album  string
	Cover  string
}
