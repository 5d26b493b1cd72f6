package watcher

import (
	"context"

	"github.com/lcyvin/i3wm-master-layout/master-layout/tree"
	"go.i3wm.org/i3/v4"
)

// Event is one of WindowNew, WindowFocus or WorkspaceFocus.
type Event interface {
	// Dispatch calls the Handler method matching the event.
	Dispatch(ctx context.Context, h Handler) error
	isEvent()
}

// Handler has one method per Event variant, so every implementation covers
// every kind of event.
type Handler interface {
	OnWindowNew(ctx context.Context, ev WindowNew) error
	OnWindowFocus(ctx context.Context, ev WindowFocus) error
	OnWorkspaceFocus(ctx context.Context, ev WorkspaceFocus) error
}

type WindowNew struct {
	Container tree.ID
}

type WindowFocus struct {
	Container tree.ID
}

type WorkspaceFocus struct {
	Workspace string
}

func (ev WindowNew) Dispatch(ctx context.Context, h Handler) error {
	return h.OnWindowNew(ctx, ev)
}

func (ev WindowFocus) Dispatch(ctx context.Context, h Handler) error {
	return h.OnWindowFocus(ctx, ev)
}

func (ev WorkspaceFocus) Dispatch(ctx context.Context, h Handler) error {
	return h.OnWorkspaceFocus(ctx, ev)
}

func (WindowNew) isEvent()      {}
func (WindowFocus) isEvent()    {}
func (WorkspaceFocus) isEvent() {}

// EventTypes are the i3 event types Translate understands.
var EventTypes = []i3.EventType{i3.WindowEventType, i3.WorkspaceEventType}

// Translate maps an i3 event onto an Event. The second return value is false
// for events the policy doesn't react to.
func Translate(evt i3.Event) (Event, bool) {
	switch e := evt.(type) {
	case *i3.WindowEvent:
		switch e.Change {
		case "new":
			return WindowNew{Container: tree.ID(e.Container.ID)}, true
		case "focus":
			return WindowFocus{Container: tree.ID(e.Container.ID)}, true
		}
	case *i3.WorkspaceEvent:
		if e.Change == "focus" {
			return WorkspaceFocus{Workspace: e.Current.Name}, true
		}
	}
	return nil, false
}

// Receiver is the part of *i3.EventReceiver the watcher needs.
type Receiver interface {
	Next() bool
	Event() i3.Event
	Close() error
}

// Watch sends translated events from recv to data until recv ends or ctx is
// cancelled. It returns the error that ended the receiver.
func Watch(ctx context.Context, recv Receiver, data chan<- Event) error {
	for recv.Next() {
		ev, ok := Translate(recv.Event())
		if !ok {
			continue
		}

		select {
		case data <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return recv.Close()
}
