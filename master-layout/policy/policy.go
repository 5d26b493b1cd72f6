// Package policy implements the master/stack layout on top of the i3 tree.
//
// The first child of the grouping container is the master; every other
// child belongs to the stack. Handlers query a fresh tree for every event and
// never keep state between calls.
package policy

import (
	"context"

	"github.com/lcyvin/i3wm-master-layout/master-layout/command"
	"github.com/lcyvin/i3wm-master-layout/master-layout/config"
	"github.com/lcyvin/i3wm-master-layout/master-layout/tree"
	"github.com/lcyvin/i3wm-master-layout/master-layout/types"
	"github.com/lcyvin/i3wm-master-layout/master-layout/watcher"
	"go.uber.org/zap"
)

// Client queries the tree and runs commands.
type Client interface {
	Tree(ctx context.Context) (*tree.Snapshot, error)
	command.Runner
}

type Policy struct {
	cfg    config.Config
	client Client
	emit   *command.Emitter
	logger *zap.Logger
}

var _ watcher.Handler = (*Policy)(nil)

func New(cfg config.Config, client Client, logger *zap.Logger, opts ...command.Option) *Policy {
	return &Policy{
		cfg:    cfg,
		client: client,
		emit:   command.NewEmitter(client, logger, opts...),
		logger: logger,
	}
}

// selection returns the fresh tree and the focused container, or a nil
// container when the focused container is out of scope.
func (p *Policy) selection(ctx context.Context) (*tree.Snapshot, *tree.Container, error) {
	s, err := p.client.Tree(ctx)
	if err != nil {
		return nil, nil, err
	}

	focused := s.Focused()
	if Excluded(p.cfg, s, focused) {
		return s, nil, nil
	}
	return s, focused, nil
}

// correctWorkspace wraps the children of a multi-child workspace into a single
// container. sway addresses a workspace with several direct children
// inconsistently, so this has to run before the workspace is used as a unit.
func (p *Policy) correctWorkspace(ctx context.Context, s *tree.Snapshot, focused *tree.Container) error {
	ws := s.WorkspaceOf(focused)
	if ws == nil || len(ws.Children) <= 1 {
		return nil
	}

	p.logger.Debug("normalizing workspace", zap.String("workspace", ws.Name), zap.Int("children", len(ws.Children)))
	for _, cmd := range []string{
		command.Focus(ws.Children[0]),
		command.FocusParentMoveToCurrent(),
		command.Focus(focused.ID),
	} {
		if err := p.emit.Run(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// groupingContainer corrects the workspace of focused and returns the
// container holding master and stack. It answers from the snapshot taken
// before the correction.
func (p *Policy) groupingContainer(ctx context.Context, s *tree.Snapshot, focused *tree.Container) (*tree.Container, error) {
	if err := p.correctWorkspace(ctx, s, focused); err != nil {
		return nil, err
	}
	return s.GroupingContainer(s.WorkspaceOf(focused)), nil
}

// OnWindowNew appends the new window to the tail of the stack.
func (p *Policy) OnWindowNew(ctx context.Context, ev watcher.WindowNew) error {
	s, win, err := p.selection(ctx)
	if err != nil || win == nil {
		return err
	}

	group, err := p.groupingContainer(ctx, s, win)
	if err != nil {
		return err
	}

	// windows the user opened inside their own nested containers stay put
	if !p.cfg.Nested && win.Parent != group.ID {
		p.logger.Debug("skipping nested window", zap.Int64("con_id", int64(win.ID)), zap.Int64("parent", int64(win.Parent)))
		return nil
	}

	tail := s.DeepestLast(group)
	p.logger.Debug("moving new window to stack", zap.Int64("con_id", int64(win.ID)), zap.Int64("tail", int64(tail.ID)))
	if err := p.emit.Relocate(ctx, win.ID, tail.ID); err != nil {
		return err
	}

	return p.emit.ApplyStackLayout(ctx, s, group, p.cfg.StackLayout)
}

// OnWindowFocus promotes the focused window to master when the grouping
// container is left with a single child, i.e. the master went away.
func (p *Policy) OnWindowFocus(ctx context.Context, ev watcher.WindowFocus) error {
	s, focused, err := p.selection(ctx)
	if err != nil || focused == nil {
		return err
	}

	group, err := p.groupingContainer(ctx, s, focused)
	if err != nil {
		return err
	}

	if p.cfg.DisableRearrange || len(group.Children) != 1 {
		return nil
	}
	return p.reflow(ctx, group, focused)
}

// reflow restores the master/stack split. Order matters: the focused window
// has to land in the grouping container before the old stack is moved behind
// it, otherwise the stack ends up first.
func (p *Policy) reflow(ctx context.Context, group, focused *tree.Container) error {
	formerStack := group.Children[0]
	p.logger.Info("master gone, promoting focused window",
		zap.Int64("con_id", int64(focused.ID)),
		zap.Int64("group", int64(group.ID)),
		zap.Int64("stack", int64(formerStack)),
	)

	if err := p.emit.Run(ctx, command.SetLayout(group.ID, types.Splith)); err != nil {
		return err
	}
	if err := p.emit.Relocate(ctx, focused.ID, group.ID); err != nil {
		return err
	}
	return p.emit.Relocate(ctx, formerStack, group.ID)
}

// OnWorkspaceFocus only keeps the newly focused workspace normalized.
func (p *Policy) OnWorkspaceFocus(ctx context.Context, ev watcher.WorkspaceFocus) error {
	s, focused, err := p.selection(ctx)
	if err != nil || focused == nil {
		return err
	}
	return p.correctWorkspace(ctx, s, focused)
}

// SwapMaster swaps the focused window with the master. When the master
// itself is focused it trades places with the tail of the stack instead.
func (p *Policy) SwapMaster(ctx context.Context) error {
	s, focused, err := p.selection(ctx)
	if err != nil || focused == nil {
		return err
	}

	group, err := p.groupingContainer(ctx, s, focused)
	if err != nil {
		return err
	}

	target := s.Child(group, 0)
	if target != nil && target.ID == focused.ID {
		target = s.DeepestLast(group)
	}
	if target == nil || target.ID == focused.ID {
		return nil
	}

	return p.emit.Run(ctx, command.Swap(focused.ID, target.ID))
}
