package policy

import (
	"github.com/lcyvin/i3wm-master-layout/master-layout/config"
	"github.com/lcyvin/i3wm-master-layout/master-layout/tree"
)

// Excluded reports whether c is out of scope for the policy: missing, not a
// regular con, floating, outside a workspace, on an excluded workspace, or on
// an output that isn't allowed.
func Excluded(cfg config.Config, s *tree.Snapshot, c *tree.Container) bool {
	if c == nil || !c.IsWindowCon() {
		return true
	}

	ws := s.WorkspaceOf(c)
	if ws == nil {
		return true
	}
	if c.Floating {
		return true
	}
	if cfg.ExcludesWorkspace(ws.Name) {
		return true
	}
	return !cfg.AllowsOutput(c.Output)
}
