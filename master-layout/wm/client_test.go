package wm

import (
	"context"
	"errors"
	"testing"

	"go.i3wm.org/i3/v4"
)

func TestRejectionMessage(t *testing.T) {
	replies := []i3.CommandResult{
		{Success: true},
		{Success: false, Error: "No window matches given criteria"},
	}
	if got := rejection(replies, errors.New("command failed")); got != "No window matches given criteria" {
		t.Fatalf("rejection = %q", got)
	}
	if got := rejection(nil, errors.New("command failed")); got != "command failed" {
		t.Fatalf("rejection = %q", got)
	}
}

func TestTreeHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient().Tree(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Tree err = %v, want context.Canceled", err)
	}
}
