// Package live keeps the resolved configuration of a running process and
// replaces it wholesale when the file changes.
package live

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"logidconf/config"
	"logidconf/diagnostic"
	"logidconf/internal/document"
	"logidconf/schema"
)

// DefaultDebounce is how long Watch waits after the last change before reloading.
const DefaultDebounce = 500 * time.Millisecond

// ErrNotWatching is returned by Close when Watch was never started.
var ErrNotWatching = errors.New("loader is not watching")

// Loader reads one configuration file and publishes the last tree that
// resolved without error. Readers call Current at any time; a reload
// builds a new tree and swaps it in, the old one is never modified.
type Loader struct {
	path     string
	format   document.Format
	opts     []schema.Option
	debounce time.Duration
	logger   zerolog.Logger

	current atomic.Pointer[config.Config]
	mu      sync.Mutex // serializes reloads
	watcher *fsnotify.Watcher
}

// Option configures a Loader.
type Option func(*Loader)

// WithFormat forces the document format instead of guessing it from the extension.
func WithFormat(f document.Format) Option {
	return func(l *Loader) { l.format = f }
}

// WithSchemaOptions passes resolution options, such as the unknown field policy.
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(l *Loader) { l.opts = append(l.opts, opts...) }
}

// WithDebounce sets the delay between the last file event and the reload.
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) { l.debounce = d }
}

// WithLogger sets the logger for reload events.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a loader for path. Nothing is read until Reload.
func NewLoader(path string, opts ...Option) *Loader {
	l := &Loader{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	l.logger = l.logger.With().Str("component", "config-loader").Str("file", l.path).Logger()

	return l
}

// Path returns the watched file.
func (l *Loader) Path() string { return l.path }

// Current returns the last successfully resolved configuration, or nil
// before the first successful Reload.
func (l *Loader) Current() *config.Config {
	return l.current.Load()
}

// Reload reads and resolves the file. On success the new tree replaces the
// current one; on failure the current tree is kept and the error returned.
// Diagnostics are returned in both cases.
func (l *Loader) Reload() (*diagnostic.Diagnostics, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	root, err := document.Load(l.path, l.format)
	if err != nil {
		return &diagnostic.Diagnostics{}, err
	}

	cfg, diags, err := config.Resolve(root, l.opts...)
	if err != nil {
		return diags, fmt.Errorf("failed to resolve %s: %w", l.path, err)
	}

	l.current.Store(cfg)

	return diags, nil
}

// Watch reloads the file whenever it changes until ctx is done. It watches
// the parent directory so that editors replacing the file by rename are
// noticed. onReload, if not nil, is called with every newly published tree
// and the diagnostics of its resolution.
// Watch returns once the watcher is set up.
func (l *Loader) Watch(ctx context.Context, onReload func(*config.Config, *diagnostic.Diagnostics)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	l.watcher = watcher

	go l.processEvents(ctx, onReload)

	l.logger.Info().Str("dir", dir).Dur("debounce", l.debounce).Msg("Started watching configuration")

	return nil
}

func (l *Loader) processEvents(ctx context.Context, onReload func(*config.Config, *diagnostic.Diagnostics)) {
	var reloadTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}

			_ = l.watcher.Close()

			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != l.path || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			l.logger.Debug().Str("op", event.Op.String()).Msg("Configuration file changed")

			if reloadTimer != nil {
				reloadTimer.Stop()
			}

			reloadTimer = time.AfterFunc(l.debounce, func() {
				l.triggerReload(ctx, onReload)
			})

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}

			l.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

func (l *Loader) triggerReload(ctx context.Context, onReload func(*config.Config, *diagnostic.Diagnostics)) {
	if ctx.Err() != nil {
		return
	}

	if _, err := os.Stat(l.path); err != nil {
		l.logger.Debug().Err(err).Msg("Configuration file not present, keeping current")
		return
	}

	diags, err := l.Reload()
	LogDiagnostics(l.logger, diags)

	if err != nil {
		LogResolveError(l.logger.Error(), err).Msg("Failed to reload configuration, keeping current")
		return
	}

	l.logger.Info().Msg("Configuration reloaded")

	if onReload != nil {
		onReload(l.Current(), diags)
	}
}

// Close stops a running Watch.
func (l *Loader) Close() error {
	if l.watcher == nil {
		return ErrNotWatching
	}

	return l.watcher.Close()
}

// LogDiagnostics writes one log event per diagnostic.
func LogDiagnostics(logger zerolog.Logger, diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, d := range diags.All() {
		event := logger.Info()
		if d.Severity == diagnostic.SeverityWarning {
			event = logger.Warn()
		}

		event.Str("code", d.Code).Str("path", d.Path).Str("type", d.Type).Msg(d.Message)
	}
}

// LogResolveError adds err to event, split into the document path it was
// found at and the underlying cause.
func LogResolveError(event *zerolog.Event, err error) *zerolog.Event {
	if p := schema.ErrorPath(err); !p.IsRoot() {
		event = event.Str("path", p.String())
	}

	return event.Err(schema.Cause(err))
}
