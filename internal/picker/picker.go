package picker

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrCancelled is returned when the user dismisses the dialog.
var ErrCancelled = errors.New("picker: selection cancelled")

// ErrUnsupportedPlatform is returned when no dialog helper exists for the OS.
var ErrUnsupportedPlatform = errors.New("picker: no file dialog for this platform")

// Picker asks the user for one file.
type Picker interface {
	Pick(ctx context.Context) (string, error)
}

// Static always returns the same path. An empty path behaves like a
// cancelled dialog.
type Static string

func (s Static) Pick(context.Context) (string, error) {
	if s == "" {
		return "", ErrCancelled
	}
	return string(s), nil
}

// DialogPicker opens the native file dialog through a helper program:
// zenity on Linux, osascript on macOS, PowerShell on Windows.
type DialogPicker struct {
	Title      string
	Extensions []string // without dots, e.g. "obj"
	GOOS       string   // defaults to runtime.GOOS

	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewDialogPicker returns a picker filtered to the given extensions.
func NewDialogPicker(title string, extensions []string) *DialogPicker {
	return &DialogPicker{Title: title, Extensions: extensions}
}

// Pick blocks until the dialog closes or ctx is done.
func (d *DialogPicker) Pick(ctx context.Context) (string, error) {
	name, args, err := d.command()
	if err != nil {
		return "", err
	}

	run := d.run
	if run == nil {
		run = runOutput
	}
	out, err := run(ctx, name, args...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// zenity and osascript exit non-zero on cancel
			return "", ErrCancelled
		}
		return "", fmt.Errorf("picker: run %s: %w", name, err)
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

func (d *DialogPicker) command() (string, []string, error) {
	goos := d.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	title := d.Title
	if title == "" {
		title = "Select a 3D model"
	}

	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		args := []string{"--file-selection", "--title=" + title}
		if len(d.Extensions) > 0 {
			pats := make([]string, len(d.Extensions))
			for i, e := range d.Extensions {
				pats[i] = "*." + e
			}
			args = append(args, "--file-filter="+strings.Join(pats, " "))
		}
		return "zenity", args, nil
	case "darwin":
		script := fmt.Sprintf("POSIX path of (choose file with prompt %q", title)
		if len(d.Extensions) > 0 {
			quoted := make([]string, len(d.Extensions))
			for i, e := range d.Extensions {
				quoted[i] = fmt.Sprintf("%q", e)
			}
			script += " of type {" + strings.Join(quoted, ", ") + "}"
		}
		script += ")"
		return "osascript", []string{"-e", script}, nil
	case "windows":
		filter := "All files (*.*)|*.*"
		if len(d.Extensions) > 0 {
			pats := make([]string, len(d.Extensions))
			for i, e := range d.Extensions {
				pats[i] = "*." + e
			}
			joined := strings.Join(pats, ";")
			filter = "3D models (" + joined + ")|" + joined
		}
		script := "Add-Type -AssemblyName System.Windows.Forms; " +
			"$dlg = New-Object System.Windows.Forms.OpenFileDialog; " +
			"$dlg.Title = '" + strings.ReplaceAll(title, "'", "''") + "'; " +
			"$dlg.Filter = '" + filter + "'; " +
			"if ($dlg.ShowDialog() -eq 'OK') { Write-Output $dlg.FileName }"
		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
}

func runOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
