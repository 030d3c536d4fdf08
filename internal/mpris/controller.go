// Package mpris exposes the playback session on D-Bus so media keys and
// desktop widgets can drive it.
package mpris

import (
	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/playback"
)

// Controller is the playback session MPRIS drives.
type Controller interface {
	Send(i playback.Intent)
	State() playback.PlayerState
	Chapter() catalog.Chapter
	Catalog() *catalog.Catalog
}
