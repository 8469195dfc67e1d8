// Package toast shows short-lived notifications on a ui.Surface.
//
// Toasts are fire-and-forget: Show never returns an error and never blocks
// on the surface beyond the initial render. Each toast is dismissed on its
// own after its display duration.
//
//	t := toast.New(surface)
//	defer t.Close()
//	t.Success("Counselors imported")
package toast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/InsulaLabs/counsel/ui"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// DefaultDuration is how long a toast stays up unless told otherwise.
const DefaultDuration = 3 * time.Second

type Toaster struct {
	surface  ui.Surface
	logger   *slog.Logger
	duration time.Duration

	// Mounted toasts keyed by node id. Expiry is the dismissal timer.
	visible *ttlcache.Cache[string, ui.Mounted]

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

type Option func(*Toaster)

func WithDuration(d time.Duration) Option {
	return func(t *Toaster) {
		if d > 0 {
			t.duration = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Toaster) {
		if logger != nil {
			t.logger = logger
		}
	}
}

func New(surface ui.Surface, opts ...Option) *Toaster {
	if surface == nil {
		surface = ui.Discard
	}
	t := &Toaster{
		surface:  surface,
		logger:   slog.Default(),
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.WithGroup("toast")

	t.visible = ttlcache.New[string, ui.Mounted](
		ttlcache.WithTTL[string, ui.Mounted](t.duration),
		ttlcache.WithDisableTouchOnHit[string, ui.Mounted](),
	)
	t.visible.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, ui.Mounted]) {
		if err := ui.SafeRemove(item.Value()); err != nil {
			t.logger.Warn("Failed to dismiss toast", "id", item.Key(), "error", err)
			return
		}
		t.logger.Debug("Toast dismissed", "id", item.Key(), "reason", reason)
	})
	go t.visible.Start()

	return t
}

// Show mounts a toast for duration, or the toaster's default when duration
// is not positive. Render failures are logged and dropped.
func (t *Toaster) Show(level ui.Level, message string, duration time.Duration) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		t.logger.Debug("Toaster closed, dropping toast", "message", message)
		return
	}

	if duration <= 0 {
		duration = t.duration
	}
	node := ui.Node{
		ID:    uuid.NewString(),
		Kind:  ui.KindToast,
		Text:  message,
		Level: level,
	}
	mounted, err := ui.SafeRender(t.surface, node)
	if err != nil {
		t.logger.Warn("Failed to render toast", "level", level, "error", err)
		return
	}
	t.visible.Set(node.ID, mounted, duration)
}

func (t *Toaster) Success(message string) { t.Show(ui.LevelSuccess, message, 0) }
func (t *Toaster) Error(message string)   { t.Show(ui.LevelError, message, 0) }
func (t *Toaster) Warning(message string) { t.Show(ui.LevelWarning, message, 0) }
func (t *Toaster) Info(message string)    { t.Show(ui.LevelInfo, message, 0) }

// Visible is the number of toasts not yet dismissed.
func (t *Toaster) Visible() int {
	return t.visible.Len()
}

// Close stops the dismissal timer and takes down every toast still showing.
func (t *Toaster) Close() {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()
		t.visible.Stop()
		t.visible.DeleteAll()
	})
}
