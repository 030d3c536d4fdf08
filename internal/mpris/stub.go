//go:build !linux

package mpris

import (
	"github.com/spf13/afero"

	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/errmsg"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Controller, _ *errmsg.Localizer, _ string) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}

// CacheDir is unused on non-Linux platforms.
func CacheDir() string { return "" }

// CoverPath returns empty on non-Linux platforms.
func CoverPath(_ *catalog.Catalog, _ string, _ afero.Fs, _ string) string {
	return ""
}
