//go:build linux

package notify

import (
	"github.com/spf13/afero"

	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/mpris"
)

// PosterPath returns the path to the book poster, if found.
// This is a convenience wrapper around mpris.CoverPath.
func PosterPath(c *catalog.Catalog, mediaDir string) string {
	return mpris.CoverPath(c, mediaDir, afero.NewOsFs(), mpris.CacheDir())
}
