// Package ui describes what the console shows while it talks to the backend:
// a blocking overlay during long operations and short-lived toasts after them.
//
// The packages below ui only produce Node values and hand them to a Surface.
// A Surface decides how a node looks (terminal spinner, plain log line, or
// nothing at all) and returns a Mounted that takes the node away again.
package ui

import "fmt"

// Kind is the kind of node being mounted.
type Kind string

const (
	KindOverlay Kind = "overlay"
	KindToast   Kind = "toast"
)

// Level is the severity of a toast. Overlays ignore it.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Node is a description of something to show.
type Node struct {
	ID    string
	Kind  Kind
	Text  string
	Level Level
}

// Surface renders nodes.
type Surface interface {
	Render(node Node) (Mounted, error)
}

// Mounted is a rendered node.
type Mounted interface {
	Remove() error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(node Node) (Mounted, error)

func (f SurfaceFunc) Render(node Node) (Mounted, error) {
	return f(node)
}

// RemoveFunc adapts a function to Mounted.
type RemoveFunc func() error

func (f RemoveFunc) Remove() error {
	return f()
}

// Discard renders nothing.
var Discard Surface = SurfaceFunc(func(Node) (Mounted, error) {
	return RemoveFunc(func() error { return nil }), nil
})

// SafeRender renders node on s, turning a panic into an error so UI trouble
// never escapes to the caller.
func SafeRender(s Surface, node Node) (m Mounted, err error) {
	defer func() {
		if p := recover(); p != nil {
			m, err = nil, fmt.Errorf("surface panicked rendering %s: %v", node.Kind, p)
		}
	}()
	return s.Render(node)
}

// SafeRemove is the Remove counterpart of SafeRender.
func SafeRemove(m Mounted) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("surface panicked removing node: %v", p)
		}
	}()
	return m.Remove()
}
