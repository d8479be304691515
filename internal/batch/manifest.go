package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestEntry represents one input file in the output manifest.
type ManifestEntry struct {
	Model    string `json:"model"`
	Image    string `json:"image,omitempty"`
	Thumb    string `json:"thumb,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Vertices int    `json:"vertices"`
	Faces    int    `json:"faces"`
	Error    string `json:"error,omitempty"`
}

// WriteManifest writes the results as JSON to path. Image paths are stored
// relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Model:    r.Path,
			Kind:     r.Kind,
			Vertices: r.Vertices,
			Faces:    r.Faces,
			Error:    r.Error,
		}
		if r.Success {
			e.Image = relTo(dir, r.Output)
			if r.Thumb != "" {
				e.Thumb = relTo(dir, r.Thumb)
			}
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}

func relTo(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
