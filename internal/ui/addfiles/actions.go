package addfiles

import "github.com/llehouerou/deck/internal/ui/action"

// Result is sent when the popup closes.
type Result struct {
	Paths    []string
	Canceled bool // True if user pressed Escape
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "addfiles.result" }

// ActionMsg creates an action.Msg for an addfiles action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "addfiles", Action: a}
}
