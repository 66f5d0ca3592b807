package notify

import "sync"

// Recorder is a Notifier that keeps what it was sent. For tests.
type Recorder struct {
	mu     sync.Mutex
	sent   []Notification
	closed []uint32
	nextID uint32
}

// Notify implements Notifier. IDs start at 1; a notification replacing an
// earlier one keeps its ID.
func (r *Recorder) Notify(n Notification) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.nextID++
	return r.nextID, nil
}

// Close implements Notifier.
func (r *Recorder) Close(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, id)
	return nil
}

// Sent returns every notification received so far.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}
