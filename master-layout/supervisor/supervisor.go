// Package supervisor restarts the event loop after failures.
package supervisor

import (
	"context"
	"time"

	"github.com/lcyvin/i3wm-master-layout/master-layout/config"
	"github.com/thejerf/suture/v4"
	"go.uber.org/zap"
)

const stopTimeout = 5 * time.Second

// New returns a supervisor that restarts failed services right away and
// backs off for cfg.RestartBackoff once failures exceed cfg.RestartThreshold.
func New(cfg config.Config, logger *zap.Logger) *suture.Supervisor {
	return suture.New(config.AppName, suture.Spec{
		EventHook:        EventHook(logger),
		FailureThreshold: cfg.RestartThreshold,
		FailureBackoff:   cfg.RestartBackoff,
		Timeout:          stopTimeout,
	})
}

func EventHook(logger *zap.Logger) suture.EventHook {
	return func(e suture.Event) {
		switch ev := e.(type) {
		case suture.EventServiceTerminate:
			logger.Warn("restarting after failure",
				zap.String("service", ev.ServiceName),
				zap.Any("error", ev.Err),
				zap.Float64("failures", ev.CurrentFailures),
				zap.Bool("restarting", ev.Restarting),
			)
		case suture.EventServicePanic:
			logger.Error("service panicked",
				zap.String("service", ev.ServiceName),
				zap.String("panic", ev.PanicMsg),
				zap.Bool("restarting", ev.Restarting),
			)
		case suture.EventBackoff:
			logger.Warn("too many failures, backing off", zap.String("supervisor", ev.SupervisorName))
		case suture.EventResume:
			logger.Info("resuming after backoff", zap.String("supervisor", ev.SupervisorName))
		default:
			logger.Debug("supervisor event", zap.String("event", e.String()))
		}
	}
}

// Run supervises svc until ctx is done.
func Run(ctx context.Context, sup *suture.Supervisor, svc suture.Service) error {
	sup.Add(svc)
	err := sup.Serve(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
