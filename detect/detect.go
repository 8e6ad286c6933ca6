// Package detect finds scripture citations in outline text. It parses the
// outline structure, extracts pattern candidates line by line while folding
// a ContextState through the scan, expands them into canonical references,
// and optionally reconciles the result with a generative Resolver.
package detect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/versefill"
	"github.com/google/uuid"
)

// DefaultResolverTimeout bounds a Resolver call when none is configured.
const DefaultResolverTimeout = 30 * time.Second

var _ versefill.Detector = (*Detector)(nil)

// Detector runs the detection pipeline. The zero value detects with the
// pattern library only.
type Detector struct {
	// Resolver is the optional supplemental strategy. Nil disables it.
	Resolver        versefill.Resolver
	ResolverTimeout time.Duration
	ScopePolicy     ScopePolicy

	// NewRunID overrides run id generation. Defaults to a random UUID.
	NewRunID func() string
}

// Detect implements versefill.Detector.
func (d *Detector) Detect(ctx context.Context, text string) (*versefill.Detection, error) {
	if !utf8.ValidString(text) {
		return nil, versefill.Errorf(versefill.EINVALID, "text is not valid UTF-8")
	}
	text = Normalize(text)
	if strings.TrimSpace(text) == "" {
		return nil, versefill.Errorf(versefill.EINVALID, "text is empty")
	}

	// The resolver runs out of band while the pattern scan proceeds.
	resolved := d.resolve(ctx, text)

	outline := ParseOutline(text)
	lines := outline.Lines()
	var diag versefill.Diagnostics
	pattern := Scan(lines, d.ScopePolicy, &diag)
	CheckStructure(outline, &diag)

	var result versefill.ResolverResult
	select {
	case result = <-resolved:
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result.Status == versefill.ResolverTimedOut || result.Status == versefill.ResolverFailed {
		diag.Add(versefill.IssueExternalServiceFailure, -1, "", result.Err.Error())
	}

	cands, stats := Reconcile(lines, pattern, result)
	attached := AttachLines(lines, cands)

	return &versefill.Detection{
		RunID:       d.runID(),
		Fingerprint: Fingerprint(text),
		Text:        text,
		Outline:     outline,
		Candidates:  attached,
		References:  UniqueReferences(attached),
		Diagnostics: diag,
		Resolver:    stats,
	}, nil
}

// resolve starts the Resolver call and delivers its outcome as a value.
func (d *Detector) resolve(ctx context.Context, text string) <-chan versefill.ResolverResult {
	ch := make(chan versefill.ResolverResult, 1)
	if d.Resolver == nil {
		ch <- versefill.ResolverResult{Status: versefill.ResolverDisabled}
		return ch
	}

	timeout := d.ResolverTimeout
	if timeout <= 0 {
		timeout = DefaultResolverTimeout
	}
	go func() {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		res, err := d.Resolver.Resolve(ctx, text)
		switch {
		case err == nil && res == nil:
			ch <- versefill.ResolverResult{Status: versefill.ResolverFailed, Err: versefill.Errorf(versefill.EINTERNAL, "resolver returned no result")}
		case err == nil:
			ch <- versefill.ResolverResult{Status: versefill.ResolverOK, Resolution: res}
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) || versefill.ErrorCode(err) == versefill.ETIMEOUT:
			ch <- versefill.ResolverResult{Status: versefill.ResolverTimedOut, Err: fmt.Errorf("resolver timed out after %s: %w", timeout, err)}
		default:
			ch <- versefill.ResolverResult{Status: versefill.ResolverFailed, Err: fmt.Errorf("resolver: %w", err)}
		}
	}()
	return ch
}

func (d *Detector) runID() string {
	if d.NewRunID != nil {
		return d.NewRunID()
	}
	return uuid.New().String()
}

// Fingerprint returns a stable hash of normalized text.
func Fingerprint(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// Scan extracts and resolves the pattern candidates of every outline line
// in document order. lines must be in document order: the context state is
// folded through them and resolution depends on encounter order.
func Scan(lines []*versefill.OutlineNode, policy ScopePolicy, diag *versefill.Diagnostics) []*versefill.Candidate {
	state := NewContextState(policy)
	var out []*versefill.Candidate
	for _, n := range lines {
		state = state.EnterLine(n)

		var lineRefs []versefill.Reference
		for _, c := range Extract(n.Text, n.TextOffset, n.Line, diag) {
			var ok bool
			if state, ok = resolveCandidate(state, c, diag); !ok {
				continue
			}
			out = append(out, c)
			lineRefs = append(lineRefs, c.References...)
		}

		state = state.LeaveLine(n, lineRefs)
	}
	return out
}

// resolveCandidate fills c.References from its parsed clauses. Candidates
// with an explicit chapter update the nearest context.
func resolveCandidate(state ContextState, c *versefill.Candidate, diag *versefill.Diagnostics) (ContextState, bool) {
	explicit := c.Clauses[0].Chapter != 0
	var book *versefill.Book
	chapter := 0

	switch {
	case c.Book != 0:
		book = versefill.BookByID(c.Book)
	case explicit:
		id, ok := state.ResolveBook()
		if !ok {
			diag.Add(versefill.IssueUnresolvedContext, c.Line, c.Text, "no book in context")
			return state, false
		}
		book = versefill.BookByID(id)
	default:
		id, ch, ok := state.Resolve(c.Clauses[0].Items[0].Start)
		if !ok {
			diag.Add(versefill.IssueUnresolvedContext, c.Line, c.Text, "no book or chapter in context")
			return state, false
		}
		book, chapter = versefill.BookByID(id), ch
	}

	refs, discards := Expand(book, chapter, c.Clauses)
	for _, reason := range discards {
		diag.Add(versefill.IssueParseDiscard, c.Line, c.Text, reason)
	}
	if len(refs) == 0 {
		return state, false
	}
	c.Book = book.ID
	c.References = refs
	if explicit {
		state = state.Observe(refs[len(refs)-1])
	}
	return state, true
}
