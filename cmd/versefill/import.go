package main

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/sqlite"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	checksum := sqlite.Checksum(content)
	if !c.Force {
		prior, err := deps.Imports.FindImports(deps.Ctx, versefill.ImportFilter{Checksum: &checksum, Limit: 1})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", versefill.ErrorMessage(err))
			return err
		}
		if len(prior) > 0 {
			fmt.Fprintf(deps.Stdout, "Already imported from %s on %s. Use --force to import again.\n",
				prior[0].Source, prior[0].ImportedAt.Format("2006-01-02"))
			return nil
		}
	}

	records, err := parseVerses(content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", versefill.ErrorMessage(err))
		return err
	}

	if err := deps.Verses.CreateVerses(deps.Ctx, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", versefill.ErrorMessage(err))
		return err
	}

	imp := &versefill.Import{
		Source:     sourceName(c.File),
		VerseCount: len(records),
		Checksum:   checksum,
	}
	if err := deps.Imports.CreateImport(deps.Ctx, imp); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", versefill.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d verses from %s\n", len(records), imp.Source)
	return nil
}

// parseVerses reads one verse per line as book, chapter, verse and text
// separated by tabs. The book is a registry id or a name. Blank lines and
// lines starting with # are skipped.
func parseVerses(content []byte) ([]versefill.VerseRecord, error) {
	var records []versefill.VerseRecord

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, "\t", 4)
		if len(fields) != 4 {
			return nil, versefill.Errorf(versefill.EINVALID, "line %d: want 4 tab-separated fields, got %d", lineNo, len(fields))
		}

		book := parseBook(fields[0])
		if book == 0 {
			return nil, versefill.Errorf(versefill.EINVALID, "line %d: unknown book %q", lineNo, fields[0])
		}
		chapter, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, versefill.Errorf(versefill.EINVALID, "line %d: bad chapter %q", lineNo, fields[1])
		}
		verse, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil || verse < 1 {
			return nil, versefill.Errorf(versefill.EINVALID, "line %d: bad verse %q", lineNo, fields[2])
		}

		ref := versefill.Reference{Book: book, Chapter: chapter, Verse: verse}
		if err := ref.Validate(); err != nil {
			return nil, versefill.Errorf(versefill.EINVALID, "line %d: %s", lineNo, versefill.ErrorMessage(err))
		}
		records = append(records, versefill.VerseRecord{Reference: ref, Text: strings.TrimSpace(fields[3])})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, versefill.Errorf(versefill.EINVALID, "no verses found")
	}
	return records, nil
}

func parseBook(s string) versefill.BookID {
	s = strings.TrimSpace(s)
	if id := versefill.ParseBookID(s); id != 0 {
		return id
	}
	if b, ok := versefill.LookupBookExact(s); ok {
		return b.ID
	}
	return 0
}
