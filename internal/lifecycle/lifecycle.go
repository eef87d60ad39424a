// Package lifecycle runs long-lived components with graceful startup and
// shutdown on signal, context cancellation, or completion.
package lifecycle

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service represents a long-running component that can be started and stopped.
type Service interface {
	// Start runs the service. It blocks until the service finishes, is
	// stopped, or fails.
	Start() error
	// Stop asks a running service to return from Start. It must be safe to
	// call after Start has returned.
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function, if any.
func (f *FuncService) Stop() {
	if f.StopFn != nil {
		f.StopFn()
	}
}

// Lifecycle manages the startup and shutdown of multiple services.
// Services are started in order and stopped in reverse order.
type Lifecycle struct {
	logger   *zap.Logger
	services []namedService
	mu       sync.Mutex
	signals  []os.Signal
}

type namedService struct {
	name    string
	service Service
}

type exit struct {
	name string
	err  error
}

// New creates a Lifecycle that shuts down on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func New(logger *zap.Logger) *Lifecycle {
	if logger == nil {
		panic("lifecycle.New: logger must not be nil")
	}
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Add registers a named service. Services are started in the order added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	if name == "" || svc == nil {
		panic("lifecycle.Add: name and service are required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts all services and blocks until one of them returns, a
// termination signal arrives, or ctx is cancelled. Every service is then
// stopped in reverse order and Run waits for each Start to return.
//
// Postcondition: Returns the first service error, wrapped with the service
// name, or nil.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	exits := make(chan exit, len(services))
	var wg sync.WaitGroup
	for _, ns := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.logger.Info("starting service", zap.String("service", ns.name))
			svcStart := time.Now()
			err := ns.service.Start()
			if err != nil {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
			} else {
				l.logger.Info("service finished",
					zap.String("service", ns.name),
					zap.Duration("uptime", time.Since(svcStart)),
				)
			}
			exits <- exit{name: ns.name, err: err}
		}()
	}

	l.logger.Info("all services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	var firstErr error
	if len(services) > 0 {
		select {
		case sig := <-sigCh:
			l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		case ex := <-exits:
			if ex.err != nil {
				firstErr = fmt.Errorf("service %s: %w", ex.name, ex.err)
			}
		case <-ctx.Done():
			l.logger.Info("context cancelled, shutting down")
		}
	}

	l.shutdown(services)
	wg.Wait()
	close(exits)
	for ex := range exits {
		if firstErr == nil && ex.err != nil {
			firstErr = fmt.Errorf("service %s: %w", ex.name, ex.err)
		}
	}

	l.logger.Info("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return firstErr
}

func (l *Lifecycle) shutdown(services []namedService) {
	shutdownStart := time.Now()
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		l.logger.Info("stopping service", zap.String("service", ns.name))
		ns.service.Stop()
		l.logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	l.logger.Info("all services stopped", zap.Duration("shutdown_elapsed", time.Since(shutdownStart)))
}
