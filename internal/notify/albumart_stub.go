//go:build !linux

package notify

import "github.com/llehouerou/keypoint/internal/catalog"

// PosterPath returns empty on non-Linux platforms.
// Desktop notifications are only supported on Linux via D-Bus.
func PosterPath(_ *catalog.Catalog, _ string) string {
	return ""
}
