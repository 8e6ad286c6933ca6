package main

import (
	"fmt"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/render"
)

// Run executes the refs command.
func (c *RefsCmd) Run(deps *Dependencies) error {
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

	return render.WriteReferences(deps.Stdout, det)
}
