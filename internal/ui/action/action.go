// Package action defines how UI components report user intent to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is something a component asks the app to do.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the component that produced it.
type Msg struct {
	Source string // "playlist", "addfiles"
	Action Action
}

var _ tea.Msg = Msg{}
