package versefill

import "context"

// Detector finds and resolves every scripture citation in a document.
type Detector interface {
	// Detect runs one detection pass over text.
	// Returns EINVALID if the text is empty or not valid UTF-8.
	Detect(ctx context.Context, text string) (*Detection, error)
}

// Detection is the result of one detection pass. Text is the normalized
// document all spans point into.
type Detection struct {
	RunID       string        `json:"runId"`
	Fingerprint string        `json:"fingerprint"`
	Text        string        `json:"-"`
	Outline     *Outline      `json:"outline"`
	Candidates  []*Candidate  `json:"candidates"`
	References  []Reference   `json:"references"`
	Diagnostics Diagnostics   `json:"diagnostics"`
	Resolver    ResolverStats `json:"resolver"`
}

// IssueKind classifies a non-fatal problem met during a run.
type IssueKind string

// IssueKind constants.
const (
	IssueParseDiscard            IssueKind = "parse_discard"
	IssueUnresolvedContext       IssueKind = "unresolved_context"
	IssueFetchMiss               IssueKind = "fetch_miss"
	IssueExternalServiceFailure  IssueKind = "external_service_failure"
	IssueStructuralInconsistency IssueKind = "structural_inconsistency"
)

// Issue is one non-fatal problem. Line is zero-based; -1 when not tied to a line.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Line   int       `json:"line"`
	Text   string    `json:"text,omitempty"`
	Reason string    `json:"reason"`
}

// Diagnostics collects the non-fatal issues of a run.
type Diagnostics struct {
	Issues []Issue `json:"issues,omitempty"`
}

// Add records an issue.
func (d *Diagnostics) Add(kind IssueKind, line int, text, reason string) {
	d.Issues = append(d.Issues, Issue{Kind: kind, Line: line, Text: text, Reason: reason})
}

// Count returns the number of issues of the given kind.
func (d *Diagnostics) Count(kind IssueKind) int {
	n := 0
	for _, is := range d.Issues {
		if is.Kind == kind {
			n++
		}
	}
	return n
}
