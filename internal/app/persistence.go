package app

import "github.com/llehouerou/deck/internal/state"

// savePreferences stores the current volume and repeat flag. Saves are
// debounced by the state manager.
func (m Model) savePreferences() {
	if m.StateMgr == nil {
		return
	}
	m.StateMgr.SavePreferences(state.Preferences{
		Volume: m.Bar.Volume,
		Repeat: m.Bar.Repeat,
	})
}
