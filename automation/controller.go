package automation

import "context"

// Modifiers are the modifier keys held while sending a shortcut.
type Modifiers struct {
	Command bool
	Option  bool
	Control bool
	Shift   bool
}

// Controller performs the actual window operations. The production
// implementation shells out to desktop tooling; tests substitute a fake.
type Controller interface {
	// ListWindows enumerates the top-level windows currently on screen.
	ListWindows(ctx context.Context) ([]Window, error)

	// CaptureWindow captures the window's contents as PNG bytes.
	CaptureWindow(ctx context.Context, w Window) ([]byte, error)

	// TypeText delivers text to the window as keyboard input.
	TypeText(ctx context.Context, w Window, text string) error

	// SendShortcut presses key with the given modifiers held.
	SendShortcut(ctx context.Context, w Window, key string, mods Modifiers) error
}
