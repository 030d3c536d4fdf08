//go:build linux

package mpris

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"

	"github.com/llehouerou/keypoint/internal/catalog"
)

// coverNames lists common cover art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"poster.jpg", "poster.png", "poster.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// CacheDir is where embedded cover art is extracted.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, "keypoint")
}

// FindCover looks for cover art in the directory of ref on fs.
// Returns the path on fs, or empty string if not found.
func FindCover(fs afero.Fs, ref string) string {
	dir := filepath.Dir(ref)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if ok, _ := afero.Exists(fs, path); ok {
			return path
		}
	}
	return ""
}

// CoverPath returns an OS path to the book poster, or empty string if there
// is none. Art embedded in the chapter files wins over image files next to
// them; it is extracted to cacheDir on cacheFs.
func CoverPath(c *catalog.Catalog, mediaDir string, cacheFs afero.Fs, cacheDir string) string {
	if data, mime, ok := c.Poster(); ok {
		if path, err := extractCover(cacheFs, cacheDir, data, mime); err == nil {
			return path
		}
	}

	rel := FindCover(c.Media(), c.At(0).MediaRef)
	if rel == "" {
		return ""
	}
	path := filepath.Join(mediaDir, rel)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func extractCover(fs afero.Fs, dir string, data []byte, mimeType string) (string, error) {
	ext := ".jpg"
	if mimeType == "image/png" {
		ext = ".png"
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "cover"+ext)
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
