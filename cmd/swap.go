package cmd

import (
	"github.com/lcyvin/i3wm-master-layout/master-layout/policy"
	"github.com/lcyvin/i3wm-master-layout/master-layout/wm"
	"github.com/spf13/cobra"
)

func newSwapCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "swap",
		Short: "Swap the focused window with the master",
		Long: `Swaps the focused window with the master window. When the master is
focused it trades places with the last window of the stack instead.

  bindsym $mod+Return exec i3wm-master-layout swap`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, *configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return policy.New(cfg, wm.NewClient(), logger).SwapMaster(cmd.Context())
		},
	}
}
