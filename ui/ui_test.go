package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeRenderRecoversPanics(t *testing.T) {
	s := SurfaceFunc(func(Node) (Mounted, error) { panic("no terminal") })
	m, err := SafeRender(s, Node{Kind: KindOverlay})
	assert.Nil(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no terminal")
}

func TestSafeRemovePassesErrorsThrough(t *testing.T) {
	boom := errors.New("gone")
	assert.ErrorIs(t, SafeRemove(RemoveFunc(func() error { return boom })), boom)
	assert.Error(t, SafeRemove(RemoveFunc(func() error { panic("x") })))
}

func TestDiscard(t *testing.T) {
	m, err := Discard.Render(Node{Kind: KindToast, Text: "hi"})
	require.NoError(t, err)
	assert.NoError(t, m.Remove())
}
