// Package wm talks to i3 through go.i3wm.org/i3.
package wm

import (
	"context"
	"strings"

	"github.com/lcyvin/i3wm-master-layout/master-layout/tree"
	"github.com/lcyvin/i3wm-master-layout/master-layout/types"
	"github.com/lcyvin/i3wm-master-layout/master-layout/watcher"
	"github.com/pkg/errors"
	"go.i3wm.org/i3/v4"
)

// Client is stateless; every call opens its own IPC round trip.
type Client struct{}

// NewClient installs the socket lookup from Configure, so the client reaches
// sway as well as i3.
func NewClient() *Client {
	Configure()
	return &Client{}
}

// Tree fetches a fresh snapshot of the layout tree.
func (c *Client) Tree(ctx context.Context) (*tree.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := i3.GetTree()
	if err != nil {
		return nil, errors.Wrap(err, "get tree")
	}
	return tree.FromI3(t.Root), nil
}

// RunCommand separates commands i3 refused from commands that never reached it.
func (c *Client) RunCommand(_ context.Context, cmd string) types.Result {
	res := types.Result{Cmd: cmd}

	replies, err := i3.RunCommand(cmd)
	if err != nil {
		if i3.IsUnsuccessful(err) {
			res.Rejected = true
			res.Msg = rejection(replies, err)
			return res
		}
		res.Err = err
	}
	return res
}

func rejection(replies []i3.CommandResult, err error) string {
	msgs := make([]string, 0, len(replies))
	for _, r := range replies {
		if !r.Success && r.Error != "" {
			msgs = append(msgs, r.Error)
		}
	}
	if len(msgs) == 0 {
		return err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Subscribe opens an event subscription for the events the policy handles.
func (c *Client) Subscribe() watcher.Receiver {
	return i3.Subscribe(watcher.EventTypes...)
}
