package command

import (
	"fmt"

	"github.com/lcyvin/i3wm-master-layout/master-layout/tree"
	"github.com/lcyvin/i3wm-master-layout/master-layout/types"
)

func addressed(id tree.ID, c types.I3Cmd, args ...interface{}) string {
	cmd := fmt.Sprintf(`[con_id="%d"] %s`, id, c)
	for _, a := range args {
		cmd += fmt.Sprintf(" %v", a)
	}
	return cmd
}

func MarkAdd(id tree.ID, mark string) string {
	return addressed(id, types.Mark, mark)
}

func Unmark(id tree.ID, mark string) string {
	return addressed(id, types.Unmark, mark)
}

func MoveToMark(id tree.ID, mark string) string {
	return addressed(id, types.MoveToMark, mark)
}

func SplitVertical(id tree.ID) string {
	return addressed(id, types.SplitVertical)
}

func SetLayout(id tree.ID, layout types.LayoutType) string {
	return addressed(id, types.Layout, layout)
}

func Focus(id tree.ID) string {
	return addressed(id, types.Focus)
}

// FocusParentMoveToCurrent moves the parent of the focused container back
// onto the current workspace, which makes i3 re-wrap the workspace contents.
func FocusParentMoveToCurrent() string {
	return fmt.Sprintf("%s; %s", types.FocusParent, types.MoveToCurrent)
}

func Swap(id, with tree.ID) string {
	return addressed(id, types.SwapWith, with)
}
