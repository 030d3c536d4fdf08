package catalog

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

type catalogFile struct {
	Title    string         `koanf:"title"`
	Author   string         `koanf:"author"`
	Chapters []chapterEntry `koanf:"chapters"`
}

type chapterEntry struct {
	ID      int    `koanf:"id"`
	Media   string `koanf:"media"`
	Summary string `koanf:"summary"`
}

// Load reads a catalog from a TOML file:
//
//	title = "Moby-Dick"
//	author = "Herman Melville"
//
//	[[chapters]]
//	id = 0
//	media = "chapter0.mp3"
//	summary = "..."
//
// Chapter order is the order of the [[chapters]] tables.
func Load(path string, media afero.Fs) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var f catalogFile
	if err := k.Unmarshal("", &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	chapters := lo.Map(f.Chapters, func(e chapterEntry, _ int) Chapter {
		return Chapter{ID: e.ID, MediaRef: e.Media, Summary: e.Summary}
	})

	return New(Book{Title: f.Title, Author: f.Author}, chapters, media)
}
