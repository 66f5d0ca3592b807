//go:build !linux

package notify

// New returns a notifier that does nothing outside Linux.
func New() (Notifier, error) {
	return stubNotifier{}, nil
}
