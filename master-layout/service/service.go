// Package service runs the i3 event loop as a supervised service.
package service

import (
	"context"
	"sync"

	"github.com/lcyvin/i3wm-master-layout/master-layout/watcher"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrStreamClosed = errors.New("i3 event stream closed")

// Service subscribes to i3 and feeds every event to the handler, one at a
// time. Any failure ends Serve; events that arrive before the next Serve are
// lost.
type Service struct {
	subscribe func() watcher.Receiver
	handler   watcher.Handler
	logger    *zap.Logger
}

func New(subscribe func() watcher.Receiver, handler watcher.Handler, logger *zap.Logger) *Service {
	return &Service{
		subscribe: subscribe,
		handler:   handler,
		logger:    logger,
	}
}

func (s *Service) String() string {
	return "event-loop"
}

func (s *Service) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	recv := &onceCloser{Receiver: s.subscribe()}
	defer recv.Close()

	data := make(chan watcher.Event)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Watch(ctx, recv, data)
	}()

	s.logger.Info("subscribed to i3 events")
	for {
		select {
		case ev := <-data:
			s.logger.Debug("event", zap.String("kind", kind(ev)), zap.Any("payload", ev))
			if err := ev.Dispatch(ctx, s.handler); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errors.Wrapf(err, "handle %s", kind(ev))
			}
		case err := <-watchErr:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err == nil {
				return ErrStreamClosed
			}
			return errors.Wrap(err, "i3 event stream")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func kind(ev watcher.Event) string {
	switch ev.(type) {
	case watcher.WindowNew:
		return "window::new"
	case watcher.WindowFocus:
		return "window::focus"
	case watcher.WorkspaceFocus:
		return "workspace::focus"
	}
	return "unknown"
}

// onceCloser lets both the watcher and Serve close the receiver. Closing it
// from Serve is what unblocks a pending Next.
type onceCloser struct {
	watcher.Receiver
	once sync.Once
	err  error
}

func (r *onceCloser) Close() error {
	r.once.Do(func() {
		r.err = r.Receiver.Close()
	})
	return r.err
}
