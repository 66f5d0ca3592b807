package playback

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/deck/internal/player"
	"github.com/llehouerou/deck/internal/upload"
)

const testDuration = 4 * time.Minute

func audioEntries(n int) []upload.FileEntry {
	entries := make([]upload.FileEntry, n)
	for i := range entries {
		entries[i] = upload.FromBytes(fmt.Sprintf("track%d.mp3", i), "audio/mpeg", []byte{byte(i)})
	}
	return entries
}

// newTestController returns a controller over a mock backend holding n
// tracks. The position reporter is slowed down so it stays quiet.
func newTestController(t *testing.T, n int, opts ...Option) (*Controller, *player.MockBackend) {
	t.Helper()
	mock := player.NewMock(testDuration)
	opts = append([]Option{WithPositionInterval(time.Hour)}, opts...)
	c := New(mock, opts...)
	t.Cleanup(func() { _ = c.Close() })
	if n > 0 {
		res := c.AddTracks(audioEntries(n)...)
		require.Len(t, res.Added, n)
	}
	return c, mock
}

func drainErrors(sub *Subscription) []ErrorEvent {
	var out []ErrorEvent
	for {
		select {
		case e := <-sub.Error:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestAddTracks_SkipsNonAudio(t *testing.T) {
	c, mock := newTestController(t, 0)
	sub := c.Subscribe()

	res := c.AddTracks(
		upload.FromBytes("a.mp3", "audio/mpeg", []byte{1}),
		upload.FromBytes("b.txt", "text/plain", []byte("hi")),
		upload.FromBytes("c.wav", "audio/wav", []byte{2}),
	)

	require.Len(t, res.Added, 2)
	assert.Equal(t, "a.mp3", res.Added[0].Name)
	assert.Equal(t, "c.wav", res.Added[1].Name)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "b.txt", res.Skipped[0].Name)
	require.Len(t, res.Errors, 1)
	require.ErrorIs(t, res.Errors[0], ErrUnsupportedFile)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, -1, c.CurrentIndex())
	assert.Empty(t, mock.Sessions(), "adding must not start playback")
	assert.Equal(t, StateStopped, c.State())

	q := <-sub.QueueChanged
	assert.Len(t, q.Tracks, 2)
	assert.Equal(t, -1, q.Index)
}

func TestAddTracks_AssignsDistinctIDs(t *testing.T) {
	c, _ := newTestController(t, 3)
	res := c.AddTracks(audioEntries(2)...)

	seen := make(map[int64]bool)
	for _, tr := range c.Tracks() {
		assert.False(t, seen[tr.ID], "duplicate id %d", tr.ID)
		seen[tr.ID] = true
	}
	assert.Len(t, seen, 5)
	assert.Len(t, res.Added, 2)
}

func TestAddTracks_OnlyNonAudio_NoQueueEvent(t *testing.T) {
	c, _ := newTestController(t, 0)
	sub := c.Subscribe()

	res := c.AddTracks(upload.FromBytes("notes.txt", "text/plain", nil))
	assert.Empty(t, res.Added)

	select {
	case q := <-sub.QueueChanged:
		t.Fatalf("unexpected QueueChange %+v", q)
	default:
	}
}

func TestPlayAt_StartsSingleSession(t *testing.T) {
	for i := range 3 {
		t.Run(fmt.Sprintf("index %d", i), func(t *testing.T) {
			c, mock := newTestController(t, 3)

			require.NoError(t, c.PlayAt(i))

			assert.Equal(t, i, c.CurrentIndex())
			assert.Equal(t, StatePlaying, c.State())
			active := mock.Active()
			require.Len(t, active, 1)
			assert.Equal(t, c.Tracks()[i].Name, c.CurrentTrack().Name)
			assert.Equal(t, "audio/mpeg", active[0].MediaType)
		})
	}
}

func TestPlayAt_InvalidIndex(t *testing.T) {
	c, mock := newTestController(t, 3)

	for _, idx := range []int{-1, 3, 100} {
		err := c.PlayAt(idx)
		require.ErrorIs(t, err, ErrInvalidIndex, "index %d", idx)
	}
	assert.Empty(t, mock.Sessions())
	assert.Equal(t, -1, c.CurrentIndex())
}

func TestPlayAt_EmptyPlaylist(t *testing.T) {
	c, _ := newTestController(t, 0)
	require.ErrorIs(t, c.PlayAt(0), ErrEmptyPlaylist)
}

func TestPlayAt_Twice_ReleasesFirstSession(t *testing.T) {
	c, mock := newTestController(t, 3)

	require.NoError(t, c.PlayAt(0))
	first := mock.Last()
	require.NoError(t, c.PlayAt(1))

	assert.True(t, first.Closed())
	require.Len(t, mock.Active(), 1)
	assert.Equal(t, 1, c.CurrentIndex())

	// A completion from the released session must be ignored
	first.FireStaleEnd()
	assert.Equal(t, 1, c.CurrentIndex())
	assert.Len(t, mock.Sessions(), 2)
	assert.Len(t, mock.Active(), 1)
}

func TestPlayAt_SameIndexRestarts(t *testing.T) {
	c, mock := newTestController(t, 2)
	sub := c.Subscribe()

	require.NoError(t, c.PlayAt(1))
	require.NoError(t, c.PlayAt(1))

	assert.Len(t, mock.Sessions(), 2)
	assert.Len(t, mock.Active(), 1)

	<-sub.TrackChanged
	tc := <-sub.TrackChanged
	assert.Equal(t, 1, tc.PreviousIndex)
	assert.Equal(t, 1, tc.Index)
}

func TestPlayAt_AppliesVolumeAndRepeat(t *testing.T) {
	c, mock := newTestController(t, 2, WithVolume(0.3), WithRepeat(true))

	require.NoError(t, c.PlayAt(0))

	s := mock.Last()
	assert.InDelta(t, 0.3, s.Volume(), 1e-9)
	assert.True(t, s.Loop())
}

func TestPlayAt_EmitsTrackChange(t *testing.T) {
	c, _ := newTestController(t, 2, WithPlaceholder(Placeholder{Artist: "Someone"}))
	sub := c.Subscribe()

	require.NoError(t, c.PlayAt(1))

	tc := <-sub.TrackChanged
	assert.Nil(t, tc.Previous)
	assert.Equal(t, -1, tc.PreviousIndex)
	assert.Equal(t, 1, tc.Index)
	assert.Equal(t, "track1.mp3", tc.Current.Track.Name)
	assert.Equal(t, "Someone", tc.Current.Artist)
	assert.Equal(t, DefaultPlaceholder.Album, tc.Current.Album)
	assert.Equal(t, DefaultPlaceholder.Cover, tc.Current.Cover)

	sc := <-sub.StateChanged
	assert.Equal(t, StateStopped, sc.Previous)
	assert.Equal(t, StatePlaying, sc.Current)
}

func TestPlayAt_DecodeFailure(t *testing.T) {
	c, mock := newTestController(t, 0)
	entries := audioEntries(3)
	c.AddTracks(entries...)
	mock.FailOpen(entries[1].Source, errors.New("bad frame header"))
	sub := c.Subscribe()

	require.NoError(t, c.PlayAt(0))
	err := c.PlayAt(1)

	require.ErrorIs(t, err, ErrDecodeFailure)
	assert.Contains(t, err.Error(), "bad frame header")
	assert.Equal(t, 1, c.CurrentIndex())
	assert.Equal(t, StateStopped, c.State())
	assert.Empty(t, mock.Active())

	errs := drainErrors(sub)
	require.Len(t, errs, 1)
	assert.Equal(t, OpPlay, errs[0].Operation)
	require.NotNil(t, errs[0].Track)
	assert.Equal(t, "track1.mp3", errs[0].Track.Name)

	// Next moves past the broken track
	require.NoError(t, c.Next())
	assert.Equal(t, 2, c.CurrentIndex())
}

func TestNext_Circular(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("%d tracks", n), func(t *testing.T) {
			c, _ := newTestController(t, n)
			for start := range n {
				require.NoError(t, c.PlayAt(start))
				for range n {
					require.NoError(t, c.Next())
				}
				assert.Equal(t, start, c.CurrentIndex())
			}
		})
	}
}

func TestPrevious_InvertsNext(t *testing.T) {
	c, _ := newTestController(t, 4)
	for start := range 4 {
		require.NoError(t, c.PlayAt(start))
		require.NoError(t, c.Next())
		require.NoError(t, c.Previous())
		assert.Equal(t, start, c.CurrentIndex())

		require.NoError(t, c.Previous())
		require.NoError(t, c.Next())
		assert.Equal(t, start, c.CurrentIndex())
	}
}

func TestPrevious_WrapsToLast(t *testing.T) {
	c, _ := newTestController(t, 3)
	require.NoError(t, c.PlayAt(0))
	require.NoError(t, c.Previous())
	assert.Equal(t, 2, c.CurrentIndex())
}

func TestNextPrevious_BeforeAnythingPlayed(t *testing.T) {
	c, _ := newTestController(t, 3)
	require.NoError(t, c.Next())
	assert.Equal(t, 0, c.CurrentIndex())

	c2, _ := newTestController(t, 3)
	require.NoError(t, c2.Previous())
	assert.Equal(t, 2, c2.CurrentIndex())
}

func TestNextPrevious_EmptyPlaylist(t *testing.T) {
	c, mock := newTestController(t, 0)
	require.ErrorIs(t, c.Next(), ErrEmptyPlaylist)
	require.ErrorIs(t, c.Previous(), ErrEmptyPlaylist)
	assert.Empty(t, mock.Sessions())
}

func TestTrackEnd_AdvancesAndWraps(t *testing.T) {
	c, mock := newTestController(t, 3)

	require.NoError(t, c.PlayAt(1))
	require.True(t, mock.Last().SimulateEnd(nil))
	assert.Equal(t, 2, c.CurrentIndex())

	require.True(t, mock.Last().SimulateEnd(nil))
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Equal(t, StatePlaying, c.State())
	assert.Len(t, mock.Active(), 1)
}

func TestTrackEnd_LoopDoesNotAdvance(t *testing.T) {
	c, mock := newTestController(t, 3)
	c.SetRepeat(true)

	require.NoError(t, c.PlayAt(1))
	s := mock.Last()
	s.SetPosition(time.Minute)

	assert.False(t, s.SimulateEnd(nil))
	assert.Equal(t, 1, c.CurrentIndex())
	assert.Len(t, mock.Sessions(), 1)
	assert.Equal(t, time.Duration(0), s.Position())
	assert.Equal(t, StatePlaying, c.State())
}

func TestTrackEnd_SingleTrackReplays(t *testing.T) {
	c, mock := newTestController(t, 1)

	require.NoError(t, c.PlayAt(0))
	require.True(t, mock.Last().SimulateEnd(nil))

	assert.Equal(t, 0, c.CurrentIndex())
	assert.Len(t, mock.Sessions(), 2)
	assert.Equal(t, StatePlaying, c.State())
}

func TestTrackEnd_DecodeErrorAdvances(t *testing.T) {
	c, mock := newTestController(t, 2)
	sub := c.Subscribe()

	require.NoError(t, c.PlayAt(0))
	require.True(t, mock.Last().SimulateEnd(errors.New("truncated")))

	assert.Equal(t, 1, c.CurrentIndex())
	errs := drainErrors(sub)
	require.Len(t, errs, 1)
	assert.Equal(t, OpDecode, errs[0].Operation)
	require.ErrorIs(t, errs[0].Err, ErrDecodeFailure)
}

func TestTrackEnd_DecodeErrorOnOnlyTrackStops(t *testing.T) {
	c, mock := newTestController(t, 1)

	require.NoError(t, c.PlayAt(0))
	require.True(t, mock.Last().SimulateEnd(errors.New("truncated")))

	assert.Len(t, mock.Sessions(), 1)
	assert.Empty(t, mock.Active())
	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, 0, c.CurrentIndex())
}

func TestGuards_BeforePlay(t *testing.T) {
	c, mock := newTestController(t, 2)

	require.ErrorIs(t, c.TogglePause(), ErrNoActiveSession)
	require.ErrorIs(t, c.Seek(0.5), ErrNoActiveSession)
	assert.NotPanics(t, func() { c.SetVolume(0.25) })
	assert.NotPanics(t, func() { c.ToggleRepeat() })
	assert.Equal(t, PositionChange{}, c.Position())

	_, ok := c.NowPlaying()
	assert.False(t, ok)
	assert.Nil(t, c.CurrentTrack())

	// Settings made before play apply to the first session
	require.NoError(t, c.PlayAt(0))
	assert.InDelta(t, 0.25, mock.Last().Volume(), 1e-9)
	assert.True(t, mock.Last().Loop())
}

func TestTogglePause(t *testing.T) {
	c, _ := newTestController(t, 1)
	sub := c.Subscribe()
	require.NoError(t, c.PlayAt(0))
	<-sub.StateChanged

	require.NoError(t, c.TogglePause())
	assert.Equal(t, StatePaused, c.State())
	sc := <-sub.StateChanged
	assert.Equal(t, StatePlaying, sc.Previous)
	assert.Equal(t, StatePaused, sc.Current)

	require.NoError(t, c.TogglePause())
	assert.Equal(t, StatePlaying, c.State())
	sc = <-sub.StateChanged
	assert.Equal(t, StatePaused, sc.Previous)
	assert.Equal(t, StatePlaying, sc.Current)
}

func TestTogglePause_StoppedSession(t *testing.T) {
	c, mock := newTestController(t, 1)
	require.NoError(t, c.PlayAt(0))
	_ = mock.Last().Close()

	require.ErrorIs(t, c.TogglePause(), ErrNoActiveSession)
	assert.Equal(t, StateStopped, c.State())
}

func TestSeek(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     time.Duration
	}{
		{"middle", 0.5, 2 * time.Minute},
		{"start", 0, 0},
		{"end", 1, testDuration},
		{"clamp above", 1.7, testDuration},
		{"clamp below", -0.2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mock := newTestController(t, 1)
			require.NoError(t, c.PlayAt(0))

			require.NoError(t, c.Seek(tt.fraction))

			seeks := mock.Last().Seeks()
			require.Len(t, seeks, 1)
			assert.Equal(t, tt.want, seeks[0])
		})
	}
}

func TestSeek_EmitsPosition(t *testing.T) {
	c, _ := newTestController(t, 1)
	sub := c.Subscribe()
	require.NoError(t, c.PlayAt(0))

	require.NoError(t, c.Seek(0.25))

	p := <-sub.PositionChanged
	assert.Equal(t, time.Minute, p.Elapsed)
	assert.Equal(t, testDuration, p.Duration)
	assert.InDelta(t, 0.25, p.Fraction, 1e-9)
}

func TestSeek_UnknownDuration(t *testing.T) {
	c, mock := newTestController(t, 1)
	require.NoError(t, c.PlayAt(0))
	mock.Last().SetDuration(0)

	require.ErrorIs(t, c.Seek(0.5), ErrNotReady)
	assert.Empty(t, mock.Last().Seeks())
}

func TestSetVolume_RememberedAcrossTracks(t *testing.T) {
	c, mock := newTestController(t, 3)
	sub := c.Subscribe()
	require.NoError(t, c.PlayAt(0))

	c.SetVolume(0.4)
	assert.InDelta(t, 0.4, mock.Last().Volume(), 1e-9)
	m := <-sub.ModeChanged
	assert.InDelta(t, 0.4, m.Volume, 1e-9)

	require.NoError(t, c.Next())
	assert.InDelta(t, 0.4, mock.Last().Volume(), 1e-9)
	assert.InDelta(t, 0.4, c.Volume(), 1e-9)
}

func TestSetVolume_Clamps(t *testing.T) {
	c, _ := newTestController(t, 0)
	c.SetVolume(3)
	assert.InDelta(t, 1.0, c.Volume(), 1e-9)
	c.SetVolume(-1)
	assert.InDelta(t, 0.0, c.Volume(), 1e-9)
}

func TestToggleRepeat(t *testing.T) {
	c, mock := newTestController(t, 1)
	sub := c.Subscribe()
	require.NoError(t, c.PlayAt(0))

	assert.True(t, c.ToggleRepeat())
	assert.True(t, mock.Last().Loop())
	assert.True(t, c.Repeat())
	m := <-sub.ModeChanged
	assert.True(t, m.Repeat)

	assert.False(t, c.ToggleRepeat())
	assert.False(t, mock.Last().Loop())
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	c, _ := newTestController(t, 0)
	require.ErrorIs(t, c.Shuffle(), ErrEmptyPlaylist)

	c1, _ := newTestController(t, 1)
	sub := c1.Subscribe()
	before := c1.Tracks()
	require.NoError(t, c1.Shuffle())
	assert.Equal(t, before, c1.Tracks())
	select {
	case <-sub.QueueChanged:
		t.Fatal("single-track shuffle must not emit a QueueChange")
	default:
	}
}

func TestShuffle_PreservesMultiset(t *testing.T) {
	c, _ := newTestController(t, 8, WithRand(rand.New(rand.NewPCG(1, 2))))
	before := c.Tracks()

	require.NoError(t, c.Shuffle())

	after := c.Tracks()
	assert.ElementsMatch(t, before, after)
}

func TestShuffle_CurrentFollowsPlayingTrack(t *testing.T) {
	c, mock := newTestController(t, 6, WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, c.PlayAt(2))
	playing := c.CurrentTrack()
	sessions := len(mock.Sessions())

	require.NoError(t, c.Shuffle())

	cur := c.CurrentTrack()
	require.NotNil(t, cur)
	assert.Equal(t, playing.ID, cur.ID)
	assert.Equal(t, c.Tracks()[c.CurrentIndex()].ID, playing.ID)
	assert.Len(t, mock.Sessions(), sessions, "shuffle must not restart playback")
}

func TestShuffle_Reproducible(t *testing.T) {
	a, _ := newTestController(t, 10, WithRand(rand.New(rand.NewPCG(42, 0))))
	b, _ := newTestController(t, 10, WithRand(rand.New(rand.NewPCG(42, 0))))

	require.NoError(t, a.Shuffle())
	require.NoError(t, b.Shuffle())

	assert.Equal(t, a.Tracks(), b.Tracks())
}

func TestClose(t *testing.T) {
	c, mock := newTestController(t, 0)
	entries := audioEntries(2)
	c.AddTracks(entries...)
	sub := c.Subscribe()
	require.NoError(t, c.PlayAt(0))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	assert.Empty(t, mock.Active())
	<-sub.Done

	for _, e := range entries {
		_, err := e.Source.Open()
		require.ErrorIs(t, err, upload.ErrReleased)
	}

	require.ErrorIs(t, c.PlayAt(0), ErrClosed)
	require.ErrorIs(t, c.Next(), ErrClosed)
	require.ErrorIs(t, c.TogglePause(), ErrClosed)
	require.ErrorIs(t, c.Shuffle(), ErrClosed)
	res := c.AddTracks(audioEntries(1)...)
	assert.Empty(t, res.Added)
	require.ErrorIs(t, res.Errors[0], ErrClosed)

	late := c.Subscribe()
	<-late.Done
}

func TestScenario_MixedUpload(t *testing.T) {
	c, mock := newTestController(t, 0)

	res := c.AddTracks(
		upload.FromBytes("a.mp3", "audio/mpeg", []byte{1}),
		upload.FromBytes("b.txt", "text/plain", []byte("x")),
		upload.FromBytes("c.wav", "audio/wav", []byte{2}),
	)
	require.Len(t, res.Added, 2)

	require.NoError(t, c.PlayAt(0))
	assert.Equal(t, "a.mp3", c.CurrentTrack().Name)

	require.NoError(t, c.Next())
	assert.Equal(t, "c.wav", c.CurrentTrack().Name)
	assert.Equal(t, "audio/wav", mock.Last().MediaType)

	require.True(t, mock.Last().SimulateEnd(nil))
	assert.Equal(t, "a.mp3", c.CurrentTrack().Name)
	assert.Len(t, mock.Active(), 1)
}
