package term

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/InsulaLabs/counsel/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainOverlayIsOneLine(t *testing.T) {
	var out bytes.Buffer
	s := New(&out)

	m, err := s.Render(ui.Node{Kind: ui.KindOverlay, Text: "importing counselors.xlsx"})
	require.NoError(t, err)
	require.NoError(t, m.Remove())

	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.Contains(t, out.String(), "importing counselors.xlsx")
}

func TestToastLines(t *testing.T) {
	tests := []struct {
		level ui.Level
		glyph string
	}{
		{ui.LevelSuccess, "✓"},
		{ui.LevelError, "✗"},
		{ui.LevelWarning, "!"},
		{ui.LevelInfo, "•"},
	}
	for _, tc := range tests {
		t.Run(string(tc.level), func(t *testing.T) {
			var out bytes.Buffer
			_, err := New(&out).Render(ui.Node{Kind: ui.KindToast, Level: tc.level, Text: "file uploaded"})
			require.NoError(t, err)
			assert.Contains(t, out.String(), tc.glyph+" file uploaded")
		})
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := New(&bytes.Buffer{}).Render(ui.Node{Kind: "modal"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestInteractiveOverlayStopsOnRemove(t *testing.T) {
	var out safeBuffer
	s := New(&out, WithInteractive(true))

	m, err := s.Render(ui.Node{Kind: ui.KindOverlay, Text: "uploading…"})
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- m.Remove() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("overlay did not stop")
	}
	assert.NoError(t, m.Remove())
}

// safeBuffer is written by the bubbletea renderer goroutine.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
