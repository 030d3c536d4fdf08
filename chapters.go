package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/ui/render"
)

func newChaptersCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List the chapters of the catalog and check their media",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(*f)
			if err != nil {
				return err
			}
			return printChapters(cmd.OutOrStdout(), s.catalog)
		},
	}
}

// printChapters writes one line per chapter: number, media title, size and
// summary. Chapters whose media cannot be resolved are marked missing.
func printChapters(w io.Writer, c *catalog.Catalog) error {
	book := c.Book()
	if _, err := fmt.Fprintf(w, "%s · %s\n\n", book.Title, book.Author); err != nil {
		return err
	}

	for i, ch := range c.Chapters() {
		title, size := "missing", "-"
		if info, err := c.Info(ch); err == nil {
			title = info.Title
			size = humanize.Bytes(uint64(info.Size)) //nolint:gosec // file sizes are non-negative
		}
		_, err := fmt.Fprintf(w, "%2d. %-32s %8s  %s\n",
			i+1,
			render.Truncate(title, 32),
			size,
			render.Truncate(ch.Summary, 60),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
