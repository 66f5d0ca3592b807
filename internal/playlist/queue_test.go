// internal/playlist/queue_test.go
package playlist

import (
	"math/rand/v2"
	"testing"
)

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Current() != nil {
		t.Error("Current() should be nil for empty queue")
	}
	if !q.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
}

func TestQueue_Add(t *testing.T) {
	q := NewQueue()

	q.Add(tracks("a.mp3", "b.mp3")...)

	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	// Add doesn't change current index
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_JumpTo(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("a.mp3", "b.mp3", "c.mp3")...)

	track := q.JumpTo(1)

	if track == nil || track.Name != "b.mp3" {
		t.Errorf("JumpTo(1) = %v, want b.mp3", track)
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
}

func TestQueue_JumpTo_Invalid(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("a.mp3")...)
	q.JumpTo(0)

	for _, idx := range []int{-1, 1, 5} {
		if q.JumpTo(idx) != nil {
			t.Errorf("JumpTo(%d) should return nil", idx)
		}
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_NextIndex(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		current int
		want    int
	}{
		{"empty", 0, -1, -1},
		{"nothing selected", 3, -1, 0},
		{"middle", 3, 1, 2},
		{"wraps", 3, 2, 0},
		{"single", 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.Add(tracks("a", "b", "c")[:tt.size]...)
			q.JumpTo(tt.current)
			if got := q.NextIndex(); got != tt.want {
				t.Errorf("NextIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueue_PreviousIndex(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		current int
		want    int
	}{
		{"empty", 0, -1, -1},
		{"nothing selected", 3, -1, 2},
		{"middle", 3, 1, 0},
		{"wraps", 3, 0, 2},
		{"single", 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.Add(tracks("a", "b", "c")[:tt.size]...)
			q.JumpTo(tt.current)
			if got := q.PreviousIndex(); got != tt.want {
				t.Errorf("PreviousIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueue_Shuffle_FollowsCurrentTrack(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("a", "b", "c", "d", "e", "f", "g", "h")...)
	q.JumpTo(3)
	before := q.Current().ID

	for seed := range uint64(20) {
		q.Shuffle(rand.New(rand.NewPCG(seed, seed)))
		if q.Current() == nil || q.Current().ID != before {
			t.Fatalf("seed %d: current track changed identity after shuffle", seed)
		}
	}
}

func TestQueue_Shuffle_NothingSelected(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("a", "b", "c")...)

	q.Shuffle(rand.New(rand.NewPCG(1, 1)))

	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
}

func TestQueue_Shuffle_SingleTrackNoop(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("a")...)
	q.JumpTo(0)

	q.Shuffle(rand.New(rand.NewPCG(1, 1)))

	if q.CurrentIndex() != 0 || q.Current().Name != "a" {
		t.Errorf("single-track shuffle changed state: index %d", q.CurrentIndex())
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("a", "b")...)
	q.JumpTo(1)

	q.Clear()

	if q.Len() != 0 || q.CurrentIndex() != -1 {
		t.Errorf("after Clear: Len=%d CurrentIndex=%d, want 0/-1", q.Len(), q.CurrentIndex())
	}
}
