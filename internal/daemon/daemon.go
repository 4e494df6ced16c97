package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"bindery/internal/config"
	"bindery/internal/logging"
)

const shutdownGrace = 5 * time.Second

// Daemon owns the HTTP listener and enforces single-instance execution
// through a lock file under the configured lock directory.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	handler http.Handler

	lockPath string
	lock     *flock.Flock

	listener net.Listener
	server   *http.Server

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status reports daemon runtime information.
type Status struct {
	Running      bool
	Address      string
	LockFilePath string
}

// New constructs a daemon serving the given handler.
func New(cfg *config.Config, handler http.Handler, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || handler == nil {
		return nil, errors.New("daemon requires config and handler")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Server.LockDir, "bindery.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		handler:  handler,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and begins serving. It returns once the
// listener is bound; serving continues until ctx is cancelled or Stop is
// called.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := d.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare lock directory: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another bindery instance is already running")
	}

	listener, err := net.Listen("tcp", d.cfg.Server.Bind)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("listen on %s: %w", d.cfg.Server.Bind, err)
	}
	d.listener = listener
	d.server = &http.Server{
		Handler:           d.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      d.cfg.RequestTimeout(),
		IdleTimeout:       60 * time.Second,
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go func() {
		if err := d.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("http server error", logging.Error(err))
		}
	}()
	go func() {
		<-runCtx.Done()
		d.shutdown()
	}()

	d.running.Store(true)
	d.logger.Info("bindery daemon started",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts the listener down and releases the instance lock. Safe to call
// more than once.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.shutdown()
}

func (d *Daemon) shutdown() {
	if !d.running.Swap(false) {
		return
	}
	if d.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = d.server.Shutdown(shutdownCtx)
	}
	if d.listener != nil {
		_ = d.listener.Close()
		d.listener = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release instance lock", logging.Error(err))
	}
	d.logger.Info("bindery daemon stopped")
}

// Addr returns the bound listen address, or empty when not running.
func (d *Daemon) Addr() string {
	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// Status reports the current runtime state.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		Address:      d.Addr(),
		LockFilePath: d.lockPath,
	}
}
