package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/fetch"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	text, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	det, err := deps.Detector.Detect(deps.Ctx, string(text))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", versefill.ErrorMessage(err))
		return err
	}

	verses, err := deps.Fetcher.Fetch(deps.Ctx, det.References)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", versefill.ErrorMessage(err))
		return err
	}
	fetch.ReportMisses(verses, &det.Diagnostics)

	var w io.Writer = deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		defer f.Close()
		w = f
	}

	if err := deps.Renderer.Render(w, det, verses); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", versefill.ErrorMessage(err))
		return err
	}

	if missing := verses.Missing(); len(missing) > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d of %d verses unavailable. Use 'versefill import' to load verse text.\n", len(missing), verses.Len())
	}
	if n := det.Diagnostics.Count(versefill.IssueStructuralInconsistency); n > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d outline lines rendered as plain text\n", n)
	}
	return nil
}
