package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/versefill"
)

// Run executes the books command.
func (c *BooksCmd) Run(deps *Dependencies) error {
	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBOOK\tABBREV\tCHAPTERS\tVERSES")
	for i := range versefill.Books {
		b := &versefill.Books[i]
		verses := 0
		for ch := 1; ch <= b.ChapterCount(); ch++ {
			verses += b.VerseCount(ch)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", b.ID, b.Name, b.Abbrev, b.ChapterCount(), verses)
	}
	return tw.Flush()
}
