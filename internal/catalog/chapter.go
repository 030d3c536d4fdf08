// Package catalog holds the ordered, immutable list of chapters a session plays.
package catalog

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// Errors returned by catalog construction and media resolution.
var (
	ErrEmpty         = errors.New("catalog has no chapters")
	ErrDuplicateID   = errors.New("duplicate chapter id")
	ErrEmptyMediaRef = errors.New("chapter has no media reference")
	ErrMediaNotFound = errors.New("chapter media not found")
)

// Chapter is one key point of a book: an audio resource plus its summary.
type Chapter struct {
	ID       int
	MediaRef string // file name relative to the media directory
	Summary  string
}

// Book describes the work the chapters belong to.
type Book struct {
	Title  string
	Author string
}

// Catalog is an ordered chapter list bound to the filesystem its media lives on.
// It is never mutated after New returns.
type Catalog struct {
	book     Book
	chapters []Chapter
	media    afero.Fs
}

// New validates chapters and returns a Catalog. A nil media filesystem
// resolves references against the OS filesystem.
func New(book Book, chapters []Chapter, media afero.Fs) (*Catalog, error) {
	if len(chapters) == 0 {
		return nil, ErrEmpty
	}
	if dup := lo.FindDuplicatesBy(chapters, func(c Chapter) int { return c.ID }); len(dup) > 0 {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateID, dup[0].ID)
	}
	for _, c := range chapters {
		if c.MediaRef == "" {
			return nil, fmt.Errorf("%w: chapter %d", ErrEmptyMediaRef, c.ID)
		}
	}
	if media == nil {
		media = afero.NewOsFs()
	}

	return &Catalog{
		book:     book,
		chapters: append([]Chapter(nil), chapters...),
		media:    media,
	}, nil
}

// Book returns the book metadata.
func (c *Catalog) Book() Book { return c.book }

// Len returns the number of chapters.
func (c *Catalog) Len() int { return len(c.chapters) }

// At returns the chapter at index i. It panics if i is out of range.
func (c *Catalog) At(i int) Chapter { return c.chapters[i] }

// Chapters returns a copy of all chapters in order.
func (c *Catalog) Chapters() []Chapter {
	return append([]Chapter(nil), c.chapters...)
}

// Media returns the filesystem chapter references are resolved against.
func (c *Catalog) Media() afero.Fs { return c.media }

// HasBackward reports whether a chapter precedes index i.
func (c *Catalog) HasBackward(i int) bool { return i > 0 }

// HasForward reports whether a chapter follows index i.
func (c *Catalog) HasForward(i int) bool { return i < len(c.chapters)-1 }

// Resolve checks that the chapter's media exists and returns the path to
// hand to the media backend.
func (c *Catalog) Resolve(ch Chapter) (string, error) {
	info, err := c.media.Stat(ch.MediaRef)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrMediaNotFound, ch.MediaRef)
	}
	return ch.MediaRef, nil
}
