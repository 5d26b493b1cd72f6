package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/lcyvin/i3wm-master-layout/master-layout/tree"
	"github.com/lcyvin/i3wm-master-layout/master-layout/types"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const markPrefix = "master_layout_"

// Runner sends a single command to the window manager.
type Runner interface {
	RunCommand(ctx context.Context, cmd string) types.Result
}

// Emitter issues commands through a Runner. Rejected commands are logged and
// otherwise ignored; only delivery failures are returned.
type Emitter struct {
	runner  Runner
	logger  *zap.Logger
	newMark func() string
}

type Option func(*Emitter)

// WithMarkFunc replaces the generator used for transient mark names.
func WithMarkFunc(f func() string) Option {
	return func(e *Emitter) {
		e.newMark = f
	}
}

func NewEmitter(r Runner, logger *zap.Logger, opts ...Option) *Emitter {
	e := &Emitter{
		runner:  r,
		logger:  logger,
		newMark: NewMark,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// NewMark returns a mark name no other container carries.
func NewMark() string {
	return markPrefix + uuid.New().String()
}

func (e *Emitter) Run(ctx context.Context, cmd string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := e.runner.RunCommand(ctx, cmd)
	if res.Err != nil {
		return errors.Wrapf(res.Err, "run %q", cmd)
	}
	if !res.OK() {
		e.logger.Debug("command rejected", zap.Stringer("result", res))
		return nil
	}
	e.logger.Debug("command ok", zap.Stringer("result", res))
	return nil
}

// Relocate moves subject to the position of target using a transient mark.
// The mark is removed even if the move itself is rejected or fails.
func (e *Emitter) Relocate(ctx context.Context, subject, target tree.ID) (err error) {
	mark := e.newMark()
	if err := e.Run(ctx, MarkAdd(target, mark)); err != nil {
		return err
	}
	defer func() {
		multierr.AppendInto(&err, e.Run(context.WithoutCancel(ctx), Unmark(target, mark)))
	}()

	return e.Run(ctx, MoveToMark(subject, mark))
}

// ApplyStackLayout gives the stack of group the requested layout. It only
// acts while the stack is the single second child of group; deeper nesting
// is left alone.
func (e *Emitter) ApplyStackLayout(ctx context.Context, s *tree.Snapshot, group *tree.Container, layout types.LayoutType) error {
	if group == nil || len(group.Children) < 2 {
		return nil
	}
	if layout == "" {
		layout = types.DefaultStackLayout
	}

	last := s.DeepestLast(group)
	if last == nil || last.ID != group.Children[1] || last.Layout == layout {
		return nil
	}

	if err := e.Run(ctx, SplitVertical(last.ID)); err != nil {
		return err
	}
	return e.Run(ctx, SetLayout(last.ID, layout))
}
