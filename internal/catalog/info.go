package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// id3v1Size is the length of the trailing ID3v1 block the tag reader seeks
// back over. Smaller files carry no tags.
const id3v1Size = 128

// MediaInfo is the embedded metadata of a chapter's media file.
type MediaInfo struct {
	Title     string
	Artist    string
	Album     string
	Size      int64
	Cover     []byte // embedded poster image, nil if none
	CoverMIME string
}

// Info reads tag metadata and the file size of a chapter's media.
// Files without readable tags still return their size and a title derived
// from the file name.
func (c *Catalog) Info(ch Chapter) (*MediaInfo, error) {
	ref, err := c.Resolve(ch)
	if err != nil {
		return nil, err
	}

	f, err := c.media.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", ref, err)
	}

	info := &MediaInfo{
		Title: strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref)),
		Size:  st.Size(),
	}

	if st.Size() < id3v1Size {
		return info, nil
	}

	m, err := tag.ReadFrom(f)
	if err != nil {
		return info, nil //nolint:nilerr // untagged media is valid
	}

	if m.Title() != "" {
		info.Title = m.Title()
	}
	info.Artist = m.Artist()
	info.Album = m.Album()
	if pic := m.Picture(); pic != nil {
		info.Cover = pic.Data
		info.CoverMIME = pic.MIMEType
	}

	return info, nil
}

// Poster returns the first embedded cover image found across the chapters.
func (c *Catalog) Poster() (data []byte, mimeType string, ok bool) {
	for _, ch := range c.chapters {
		info, err := c.Info(ch)
		if err != nil || info.Cover == nil {
			continue
		}
		return info.Cover, info.CoverMIME, true
	}
	return nil, "", false
}
