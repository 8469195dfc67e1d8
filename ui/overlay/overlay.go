// Package overlay keeps at most one blocking overlay on a ui.Surface.
//
// A Registry is a single slot. Acquire mounts a new overlay and, if another
// one is still up, takes that one down first; the newest caller wins and
// overlays never stack. Every Acquire returns a Handle whose Release may be
// called any number of times; only the first call has an effect, and a
// handle that was already replaced releases as a no-op.
package overlay

import (
	"log/slog"
	"sync"

	"github.com/InsulaLabs/counsel/ui"
	"github.com/google/uuid"
)

// DefaultText is shown when Acquire is called with an empty text.
const DefaultText = "uploading…"

type Registry struct {
	surface ui.Surface
	logger  *slog.Logger

	mu     sync.Mutex
	active *Handle
}

type Handle struct {
	id       string
	text     string
	registry *Registry
	mounted  ui.Mounted // nil when the surface failed to render

	released bool // guarded by registry.mu
}

func New(surface ui.Surface, logger *slog.Logger) *Registry {
	if surface == nil {
		surface = ui.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		surface: surface,
		logger:  logger.WithGroup("overlay"),
	}
}

// Acquire mounts an overlay showing text. Render failures are logged and
// still yield a usable Handle.
func (r *Registry) Acquire(text string) *Handle {
	if text == "" {
		text = DefaultText
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.logger.Debug("Replacing active overlay", "previous", r.active.id)
		r.releaseLocked(r.active)
	}

	h := &Handle{
		id:       uuid.NewString(),
		text:     text,
		registry: r,
	}
	mounted, err := ui.SafeRender(r.surface, ui.Node{ID: h.id, Kind: ui.KindOverlay, Text: text})
	if err != nil {
		r.logger.Warn("Failed to mount overlay", "id", h.id, "error", err)
	} else {
		h.mounted = mounted
	}
	r.active = h
	r.logger.Debug("Overlay mounted", "id", h.id, "text", text)
	return h
}

// Active returns the handle currently holding the slot.
func (r *Registry) Active() (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.active != nil
}

// Release takes the overlay down. Safe to call on a nil handle and more than once.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	r := h.registry
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseLocked(h)
}

func (h *Handle) ID() string   { return h.id }
func (h *Handle) Text() string { return h.text }

func (h *Handle) Released() bool {
	h.registry.mu.Lock()
	defer h.registry.mu.Unlock()
	return h.released
}

func (r *Registry) releaseLocked(h *Handle) {
	if h.released {
		return
	}
	h.released = true
	if r.active == h {
		r.active = nil
	}
	if h.mounted == nil {
		return
	}
	if err := ui.SafeRemove(h.mounted); err != nil {
		r.logger.Warn("Failed to unmount overlay", "id", h.id, "error", err)
		return
	}
	r.logger.Debug("Overlay released", "id", h.id)
}
