// Package notify sends desktop notifications over D-Bus.
package notify

// Urgency is the notification priority from the freedesktop notification
// protocol.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// appName identifies deck to the notification server.
const appName = "deck"

// Notification is one desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional)
	Icon       string  // Icon name or image path (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends n and returns its ID. A disabled or unavailable
	// notifier returns 0 and no error.
	Notify(n Notification) (uint32, error)
	// Close withdraws the notification with the given ID.
	Close(id uint32) error
}

// stubNotifier is used where D-Bus is not available.
type stubNotifier struct{}

func (stubNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }

func (stubNotifier) Close(_ uint32) error { return nil }
