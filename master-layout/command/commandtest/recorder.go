// Package commandtest provides a recording command.Runner for tests.
package commandtest

import (
	"context"
	"strings"

	"github.com/lcyvin/i3wm-master-layout/master-layout/types"
)

// Recorder keeps every command it is asked to run. Commands containing one of
// the Reject substrings are reported as rejected by i3; commands containing
// one of the Fail substrings fail with FailErr.
type Recorder struct {
	Commands []string
	Reject   []string
	Fail     []string
	FailErr  error
}

func (r *Recorder) RunCommand(_ context.Context, cmd string) types.Result {
	r.Commands = append(r.Commands, cmd)
	res := types.Result{Cmd: cmd}
	for _, f := range r.Fail {
		if strings.Contains(cmd, f) {
			res.Err = r.FailErr
			return res
		}
	}
	for _, rej := range r.Reject {
		if strings.Contains(cmd, rej) {
			res.Rejected = true
			res.Msg = "No matching window"
			return res
		}
	}
	return res
}

// FixedMark returns a mark generator that always yields name.
func FixedMark(name string) func() string {
	return func() string {
		return name
	}
}
