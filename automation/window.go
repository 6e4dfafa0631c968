// Package automation models desktop windows and the controller that acts on
// them: screenshot capture, keyboard input, and shortcut delivery.
package automation

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Rect is a window's position and size in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Window identifies one top-level desktop window.
type Window struct {
	ID     string // window-system identifier (X11 window id)
	Title  string
	Owner  string // owning application/process name
	Bounds Rect
}

// Label renders the window for listings and prompts.
func (w Window) Label() string {
	if w.Owner == "" {
		return w.Title
	}
	return w.Owner + ": " + w.Title
}

// FindByTitle selects the window best matching the query. An exact
// (case-insensitive) title match wins; otherwise the best fuzzy match over
// the window labels is returned. Reports ok=false when nothing matches.
func FindByTitle(windows []Window, query string) (Window, bool) {
	if query == "" || len(windows) == 0 {
		return Window{}, false
	}

	for _, w := range windows {
		if strings.EqualFold(w.Title, query) {
			return w, true
		}
	}

	labels := make([]string, len(windows))
	for i, w := range windows {
		labels[i] = w.Label()
	}

	matches := fuzzy.Find(query, labels)
	if len(matches) == 0 {
		return Window{}, false
	}
	return windows[matches[0].Index], true
}
