//go:build linux

// Package mpris exposes the playback controller on the session bus so
// desktop media keys and applets can drive it.
package mpris

import (
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/deck/internal/playback"
)

// Adapter connects a playback.Service to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates the adapter and starts serving in the background.
func New(service playback.Service) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("deck", &rootAdapter{}, &playerAdapter{service: service}),
	}
	go func() {
		_ = a.server.Listen()
	}()
	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

// Quit is refused: the terminal owns the lifecycle.
func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "deck", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// loop status and shuffle extensions.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	return p.service.Next()
}

func (p *playerAdapter) Previous() error {
	return p.service.Previous()
}

func (p *playerAdapter) Pause() error {
	if p.service.State() != playback.StatePlaying {
		return nil
	}
	return p.service.TogglePause()
}

func (p *playerAdapter) PlayPause() error {
	if !p.service.State().IsActive() {
		return p.Play()
	}
	return p.service.TogglePause()
}

// Stop pauses: the controller keeps its session until another track
// starts.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

// Play resumes a paused track, or starts the current track (the first one
// before anything was played).
func (p *playerAdapter) Play() error {
	switch p.service.State() {
	case playback.StatePaused:
		return p.service.TogglePause()
	case playback.StatePlaying:
		return nil
	case playback.StateStopped:
	}
	return p.service.PlayAt(max(p.service.CurrentIndex(), 0))
}

// Seek moves the playhead by offset relative to the current position.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	pos := p.service.Position()
	return p.seekTo(pos.Elapsed+time.Duration(offset)*time.Microsecond, pos.Duration)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.seekTo(time.Duration(position)*time.Microsecond, p.service.Position().Duration)
}

func (p *playerAdapter) seekTo(target, duration time.Duration) error {
	if duration <= 0 {
		return p.service.Seek(0)
	}
	return p.service.Seek(float64(target) / float64(duration))
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return errors.New("opening URIs is not supported")
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	np, ok := p.service.NowPlaying()
	if !ok {
		return types.Metadata{}, nil
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(np.Track.ID)),
		Length:  types.Microseconds(p.service.Position().Duration.Microseconds()),
		Title:   np.Track.Name,
		Artist:  []string{np.Artist},
		Album:   np.Album,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.service.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Position().Elapsed.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

// Next and Previous wrap around, so both work whenever there is a track.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.service.Len() > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.service.Len() > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.Len() > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) { return true, nil }

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Without repeat the controller wraps around the playlist.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.service.Repeat() {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusPlaylist, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	p.service.SetRepeat(status == types.LoopStatusTrack)
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle. Shuffling
// reorders the playlist once, so there is no mode to report.
func (p *playerAdapter) Shuffle() (bool, error) {
	return false, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if !shuffle {
		return nil
	}
	return p.service.Shuffle()
}

func formatTrackID(id int64) string {
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%d", id)
}
