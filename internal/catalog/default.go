package catalog

import "github.com/spf13/afero"

// DefaultBook is the book bundled with the application.
var DefaultBook = Book{
	Title:  "Moby-Dick; or, The Whale",
	Author: "Herman Melville",
}

// DefaultChapters are the key points bundled with the application. The media
// files are the LibriVox recordings of the matching chapters.
var DefaultChapters = []Chapter{
	{
		ID:       0,
		MediaRef: "mobydick_000_melville_64kb.mp3",
		Summary: "Ishmael goes to sea whenever the land grows grim: the ocean is where " +
			"restless people have always gone to find themselves again.",
	},
	{
		ID:       1,
		MediaRef: "mobydick_001_002_melville_64kb.mp3",
		Summary: "Strangers become shipmates fast. Ishmael's wary night beside Queequeg " +
			"turns into the book's first real friendship.",
	},
	{
		ID:       2,
		MediaRef: "mobydick_003_melville_64kb.mp3",
		Summary: "At the Spouter-Inn every object tells a whaling story; the sea has " +
			"already marked everyone who will sail on the Pequod.",
	},
}

// Default returns the bundled catalog with media resolved on fs.
func Default(fs afero.Fs) *Catalog {
	c, err := New(DefaultBook, DefaultChapters, fs)
	if err != nil {
		// DefaultChapters is a valid literal.
		panic(err)
	}
	return c
}
