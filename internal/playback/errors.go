package playback

import "errors"

// Errors returned by transport operations. They are wrapped with context;
// match them with errors.Is.
var (
	ErrInvalidIndex    = errors.New("track index out of range")
	ErrEmptyPlaylist   = errors.New("nothing to play")
	ErrNoActiveSession = errors.New("no track loaded")
	ErrNotReady        = errors.New("track duration not known yet")
	ErrUnsupportedFile = errors.New("not an audio file")
	ErrDecodeFailure   = errors.New("cannot decode track")
	ErrClosed          = errors.New("player closed")
)
