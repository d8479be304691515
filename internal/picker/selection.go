// Package picker chooses the mesh file to open, either from an OS dialog or
// from a path supplied up front.
package picker

import "path/filepath"

// Selection is the file-choice state. The zero value means nothing has been
// selected yet.
type Selection struct {
	path      string
	cancelled bool
}

// Selected returns a Selection holding path.
func Selected(path string) Selection {
	return Selection{path: path}
}

// Cancelled records a dismissed dialog. A previously chosen path is kept.
func (s Selection) Cancelled() Selection {
	return Selection{path: s.path, cancelled: true}
}

// Path returns the chosen file and whether one exists.
func (s Selection) Path() (string, bool) {
	return s.path, s.path != ""
}

// WasCancelled reports whether the most recent pick was dismissed.
func (s Selection) WasCancelled() bool { return s.cancelled }

// Label is the display text for the current state.
func (s Selection) Label() string {
	switch {
	case s.cancelled:
		return "selection cancelled"
	case s.path == "":
		return "selected file: none"
	}
	return "selected file: " + filepath.Base(s.path)
}
