package types

import "fmt"

type I3Cmd string
type LayoutType string

const (
	Splith  LayoutType = "splith"
	Splitv  LayoutType = "splitv"
	Stacked LayoutType = "stacked"
	Tabbed  LayoutType = "tabbed"
)

// DefaultStackLayout is used when no stack layout is configured.
const DefaultStackLayout = Splitv

// StackLayouts lists the layouts the stack may be given. splith is left out
// because a horizontal stack can't be told apart from a nested horizontal split.
var StackLayouts = []LayoutType{Tabbed, Stacked, Splitv}

// Stackable reports whether lt may be used as the stack layout.
func (lt LayoutType) Stackable() bool {
	for _, l := range StackLayouts {
		if lt == l {
			return true
		}
	}
	return false
}

func (lt LayoutType) String() string {
	return string(lt)
}

const (
	Mark          I3Cmd = "mark --add"
	Unmark        I3Cmd = "unmark"
	MoveToMark    I3Cmd = "move container to mark"
	SplitVertical I3Cmd = "split vertical"
	Layout        I3Cmd = "layout"
	Focus         I3Cmd = "focus"
	FocusParent   I3Cmd = "focus parent"
	MoveToCurrent I3Cmd = "move container to workspace current"
	SwapWith      I3Cmd = "swap container with con_id"
)

// Result is the outcome of a single command sent to i3. Err is set when the
// command could not be delivered; Rejected is set when i3 received it and
// refused it (for example because the con_id no longer exists).
type Result struct {
	Cmd      string
	Rejected bool
	Msg      string
	Err      error
}

func (r Result) OK() bool {
	return r.Err == nil && !r.Rejected
}

func (r Result) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s: %v", r.Cmd, r.Err)
	case r.Rejected:
		return fmt.Sprintf("%s: rejected: %s", r.Cmd, r.Msg)
	}
	return r.Cmd + ": ok"
}
