package automation

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"interact/config"
)

// ExecController drives windows through desktop command-line tooling:
// wmctrl for enumeration, ImageMagick's import for capture, and xdotool
// for keyboard input.
type ExecController struct{}

// NewExecController returns the production controller.
func NewExecController() *ExecController {
	return &ExecController{}
}

// RequiredCommands lists the external binaries the controller depends on.
func RequiredCommands() []string {
	return []string{"wmctrl", "import", "xdotool"}
}

func (c *ExecController) ListWindows(ctx context.Context) ([]Window, error) {
	out, err := runCommand(ctx, "wmctrl", "-lxG")
	if err != nil {
		return nil, fmt.Errorf("listing windows: %w", err)
	}
	return parseWindowList(out), nil
}

// parseWindowList parses `wmctrl -lxG` output. Each line:
//
//	<id> <desktop> <x> <y> <w> <h> <class> <host> <title...>
func parseWindowList(out string) []Window {
	var windows []Window
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}

		x, _ := strconv.Atoi(fields[2])
		y, _ := strconv.Atoi(fields[3])
		width, _ := strconv.Atoi(fields[4])
		height, _ := strconv.Atoi(fields[5])

		owner := fields[6]
		if dot := strings.LastIndex(owner, "."); dot != -1 {
			owner = owner[dot+1:]
		}

		windows = append(windows, Window{
			ID:     fields[0],
			Title:  strings.Join(fields[8:], " "),
			Owner:  owner,
			Bounds: Rect{X: x, Y: y, Width: width, Height: height},
		})
	}
	return windows
}

func (c *ExecController) CaptureWindow(ctx context.Context, w Window) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "import", "-window", w.ID, "png:-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("capturing window %s: %w: %s", w.ID, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("capturing window %s: empty image", w.ID)
	}
	return stdout.Bytes(), nil
}

func (c *ExecController) TypeText(ctx context.Context, w Window, text string) error {
	if _, err := runCommand(ctx, "xdotool", "type", "--window", w.ID, "--", text); err != nil {
		return fmt.Errorf("typing into window %s: %w", w.ID, err)
	}
	return nil
}

func (c *ExecController) SendShortcut(ctx context.Context, w Window, key string, mods Modifiers) error {
	combo := shortcutCombo(key, mods)
	if _, err := runCommand(ctx, "xdotool", "key", "--window", w.ID, combo); err != nil {
		return fmt.Errorf("sending %s to window %s: %w", combo, w.ID, err)
	}
	return nil
}

// shortcutCombo renders an xdotool key chord, e.g. "ctrl+shift+s".
func shortcutCombo(key string, mods Modifiers) string {
	var parts []string
	if mods.Command {
		parts = append(parts, "super")
	}
	if mods.Control {
		parts = append(parts, "ctrl")
	}
	if mods.Option {
		parts = append(parts, "alt")
	}
	if mods.Shift {
		parts = append(parts, "shift")
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("exec: %s %s", name, strings.Join(args, " "))
	}

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}
