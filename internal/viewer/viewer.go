// Package viewer hands a rendered image to the desktop's default viewer.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrUnsupportedPlatform is returned when no opener is known for the OS.
var ErrUnsupportedPlatform = errors.New("viewer: no opener for this platform")

// Opener displays a file.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// System opens files with xdg-open, open, or start depending on the OS.
// The call returns once the opener has been launched, not when the viewer
// window closes.
type System struct {
	GOOS string // defaults to runtime.GOOS

	start func(ctx context.Context, name string, args ...string) error
}

// Command returns the launcher invocation for path.
func (s System) Command(path string) (string, []string, error) {
	goos := s.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
}

// Open checks that path exists and launches the OS viewer on it.
func (s System) Open(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("viewer: stat %s: %w", path, err)
	}
	name, args, err := s.Command(path)
	if err != nil {
		return err
	}
	start := s.start
	if start == nil {
		start = startDetached
	}
	if err := start(ctx, name, args...); err != nil {
		return fmt.Errorf("viewer: launch %s: %w", name, err)
	}
	return nil
}

// startDetached launches the opener without tying it to ctx, so the viewer
// outlives the command that started it.
func startDetached(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
