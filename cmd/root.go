package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/lcyvin/i3wm-master-layout/master-layout/config"
	"github.com/lcyvin/i3wm-master-layout/master-layout/logging"
	"github.com/lcyvin/i3wm-master-layout/master-layout/policy"
	"github.com/lcyvin/i3wm-master-layout/master-layout/service"
	"github.com/lcyvin/i3wm-master-layout/master-layout/supervisor"
	"github.com/lcyvin/i3wm-master-layout/master-layout/wm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Master/stack layout for i3",
		Long: `Keeps one master window per workspace and folds every other window into a
stack next to it. New windows join the end of the stack; when the master
closes, the focused stack window takes its place.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := wm.NewClient()
			svc := service.New(client.Subscribe, policy.New(cfg, client, logger), logger)

			logger.Info("starting",
				zap.Strings("exclude-workspaces", cfg.ExcludeWorkspaces),
				zap.Strings("outputs", cfg.Outputs),
				zap.String("stack-layout", cfg.StackLayout.String()),
				zap.Bool("nested", cfg.Nested),
				zap.Bool("disable-rearrange", cfg.DisableRearrange),
			)
			return supervisor.Run(ctx, supervisor.New(cfg, logger), svc)
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(newSwapCommand(&configPath), newConfigCommand(&configPath))
	return cmd
}

func loadConfig(cmd *cobra.Command, path string) (config.Config, error) {
	v, err := config.NewViper(cmd.Flags(), path)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(v)
}

func setup(cmd *cobra.Command, path string) (config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd, path)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return cfg, nil, errors.Wrap(err, "build logger")
	}
	return cfg, logger, nil
}
