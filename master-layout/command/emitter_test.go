package command_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lcyvin/i3wm-master-layout/master-layout/command"
	"github.com/lcyvin/i3wm-master-layout/master-layout/command/commandtest"
	"github.com/lcyvin/i3wm-master-layout/master-layout/tree"
	. "github.com/lcyvin/i3wm-master-layout/master-layout/tree/treetest"
	"github.com/lcyvin/i3wm-master-layout/master-layout/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func newEmitter(t *testing.T, rec *commandtest.Recorder) *command.Emitter {
	return command.NewEmitter(rec, zaptest.NewLogger(t), command.WithMarkFunc(commandtest.FixedMark("mv")))
}

func TestRelocateIssuesThreeCommands(t *testing.T) {
	rec := &commandtest.Recorder{}
	if err := newEmitter(t, rec).Relocate(context.Background(), 4, 10); err != nil {
		t.Fatalf("Relocate: %v", err)
	}

	want := []string{
		`[con_id="10"] mark --add mv`,
		`[con_id="4"] move container to mark mv`,
		`[con_id="10"] unmark mv`,
	}
	if diff := cmp.Diff(want, rec.Commands); diff != "" {
		t.Fatalf("commands (-want +got):\n%s", diff)
	}
}

func TestRelocateUnmarksWhenMoveRejected(t *testing.T) {
	rec := &commandtest.Recorder{Reject: []string{"move container"}}
	if err := newEmitter(t, rec).Relocate(context.Background(), 4, 10); err != nil {
		t.Fatalf("rejection must not surface as an error: %v", err)
	}
	if len(rec.Commands) != 3 || rec.Commands[2] != `[con_id="10"] unmark mv` {
		t.Fatalf("unmark not issued after rejected move: %v", rec.Commands)
	}
}

func TestRelocateUnmarksWhenMoveFails(t *testing.T) {
	boom := errors.New("broken pipe")
	rec := &commandtest.Recorder{Fail: []string{"move container"}, FailErr: boom}
	err := newEmitter(t, rec).Relocate(context.Background(), 4, 10)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if len(rec.Commands) != 3 || rec.Commands[2] != `[con_id="10"] unmark mv` {
		t.Fatalf("unmark not issued after failed move: %v", rec.Commands)
	}
}

func TestRunLogsCommandOutcome(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	rec := &commandtest.Recorder{Reject: []string{"focus"}}
	emit := command.NewEmitter(rec, zap.New(core))

	if err := emit.Run(context.Background(), command.Focus(4)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := emit.Run(context.Background(), command.SplitVertical(4)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var got []string
	for _, e := range logs.All() {
		got = append(got, e.Message+" "+e.ContextMap()["result"].(string))
	}
	want := []string{
		`command rejected [con_id="4"] focus: rejected: No matching window`,
		`command ok [con_id="4"] split vertical: ok`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("log entries (-want +got):\n%s", diff)
	}
}

func TestRelocateUnmarksAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &cancelingRecorder{cancel: cancel}
	e := command.NewEmitter(rec, zaptest.NewLogger(t), command.WithMarkFunc(commandtest.FixedMark("mv")))

	if err := e.Relocate(ctx, 4, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	want := []string{`[con_id="10"] mark --add mv`, `[con_id="10"] unmark mv`}
	if diff := cmp.Diff(want, rec.Commands); diff != "" {
		t.Fatalf("commands (-want +got):\n%s", diff)
	}
}

// cancelingRecorder cancels the context once the mark is placed.
type cancelingRecorder struct {
	commandtest.Recorder
	cancel context.CancelFunc
}

func (r *cancelingRecorder) RunCommand(ctx context.Context, cmd string) types.Result {
	res := r.Recorder.RunCommand(ctx, cmd)
	if strings.Contains(cmd, "mark --add") {
		r.cancel()
	}
	return res
}

func TestRelocateAbortsWhenMarkFails(t *testing.T) {
	boom := errors.New("broken pipe")
	rec := &commandtest.Recorder{Fail: []string{"mark --add"}, FailErr: boom}
	if err := newEmitter(t, rec).Relocate(context.Background(), 4, 10); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if len(rec.Commands) != 1 {
		t.Fatalf("expected only the mark command, got %v", rec.Commands)
	}
}

func TestNewMarkIsUnique(t *testing.T) {
	a, b := command.NewMark(), command.NewMark()
	if a == b {
		t.Fatalf("marks collide: %s", a)
	}
	if !strings.HasPrefix(a, "master_layout_") {
		t.Fatalf("unexpected mark %q", a)
	}
}

func TestApplyStackLayoutNoopBelowTwoChildren(t *testing.T) {
	for _, ws := range []*tree.Snapshot{
		tree.FromI3(Root(Output(500, "DP-1", Workspace(100, "1")))),
		tree.FromI3(Root(Output(500, "DP-1", Workspace(100, "1", Con(11))))),
	} {
		rec := &commandtest.Recorder{}
		if err := newEmitter(t, rec).ApplyStackLayout(context.Background(), ws, ws.Get(100), types.Splitv); err != nil {
			t.Fatalf("ApplyStackLayout: %v", err)
		}
		if len(rec.Commands) != 0 {
			t.Fatalf("expected no commands, got %v", rec.Commands)
		}
	}
}

func TestApplyStackLayoutOnSecondChild(t *testing.T) {
	s := tree.FromI3(Root(Output(500, "DP-1", Workspace(100, "1", Con(10, Con(11), Con(12))))))
	rec := &commandtest.Recorder{}
	if err := newEmitter(t, rec).ApplyStackLayout(context.Background(), s, s.Get(10), ""); err != nil {
		t.Fatalf("ApplyStackLayout: %v", err)
	}

	want := []string{
		`[con_id="12"] split vertical`,
		`[con_id="12"] layout splitv`,
	}
	if diff := cmp.Diff(want, rec.Commands); diff != "" {
		t.Fatalf("commands (-want +got):\n%s", diff)
	}
}

func TestApplyStackLayoutSkipsMatchingLayout(t *testing.T) {
	s := tree.FromI3(Root(Output(500, "DP-1", Workspace(100, "1",
		Con(10, Con(11), Split(12, "tabbed", Con(13))),
	))))
	rec := &commandtest.Recorder{}
	if err := newEmitter(t, rec).ApplyStackLayout(context.Background(), s, s.Get(10), types.Tabbed); err != nil {
		t.Fatalf("ApplyStackLayout: %v", err)
	}
	if len(rec.Commands) != 0 {
		t.Fatalf("expected no commands, got %v", rec.Commands)
	}
}

func TestApplyStackLayoutSkipsNestedStack(t *testing.T) {
	// deepest-last is 14, not the second child 12
	s := tree.FromI3(Root(Output(500, "DP-1", Workspace(100, "1",
		Con(10, Con(11), Con(12, Con(13), Con(14))),
	))))
	rec := &commandtest.Recorder{}
	if err := newEmitter(t, rec).ApplyStackLayout(context.Background(), s, s.Get(10), types.Stacked); err != nil {
		t.Fatalf("ApplyStackLayout: %v", err)
	}
	if len(rec.Commands) != 0 {
		t.Fatalf("expected no commands, got %v", rec.Commands)
	}
}
