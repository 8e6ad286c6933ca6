package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/versefill"
)

// Run executes the imports command.
func (c *ImportsCmd) Run(deps *Dependencies) error {
	imports, err := deps.Imports.FindImports(deps.Ctx, versefill.ImportFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", versefill.ErrorMessage(err))
		return err
	}

	if len(imports) == 0 {
		fmt.Fprintln(deps.Stdout, "No imports found. Use 'versefill import' to load verse text.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, imp := range imports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			imp.ID[:8], imp.ImportedAt.Local().Format("2006-01-02 15:04"), imp.VerseCount, imp.Checksum, imp.Source)
	}
	return tw.Flush()
}
