package versefill

import "context"

// Resolver is the generative detection service used as a supplemental
// strategy. It reads a whole document and returns its outline with the
// references of every line.
type Resolver interface {
	// Resolve analyzes text. Returns EINVALID if the service answered with
	// output that cannot be decoded and EUNAVAILABLE if it refused the call.
	Resolve(ctx context.Context, text string) (*Resolution, error)
}

// Resolution is the structured answer of a Resolver.
type Resolution struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Nodes    []ResolvedNode `json:"nodes"`
}

// ResolvedNode is one outline line as seen by the Resolver.
type ResolvedNode struct {
	Level      string              `json:"level"`
	Marker     string              `json:"marker"`
	Text       string              `json:"text"`
	References []ResolvedReference `json:"references"`
}

// ResolvedReference is a reference as reported by the Resolver. Book is a
// free-form book name resolved through the registry.
type ResolvedReference struct {
	Book       string `json:"book"`
	Chapter    int    `json:"chapter"`
	VerseStart int    `json:"verseStart"`
	VerseEnd   int    `json:"verseEnd"`
	Citation   string `json:"citation"`
}

// ResolverStatus is the outcome of a Resolver call.
type ResolverStatus string

// ResolverStatus constants.
const (
	ResolverDisabled ResolverStatus = "disabled"
	ResolverOK       ResolverStatus = "ok"
	ResolverTimedOut ResolverStatus = "timed_out"
	ResolverFailed   ResolverStatus = "failed"
)

// ResolverResult carries a Resolver outcome as a value so reconciliation
// never depends on error control flow. Resolution is set only when Status
// is ResolverOK.
type ResolverResult struct {
	Status     ResolverStatus
	Resolution *Resolution
	Err        error
}

// ResolverStats reports how a Resolver result was reconciled.
type ResolverStats struct {
	Status    ResolverStatus `json:"status"`
	Error     string         `json:"error,omitempty"`
	Added     int            `json:"added"`
	Merged    int            `json:"merged"`
	Unmatched int            `json:"unmatched"`
}

// TokenCounter counts the model tokens of a text.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
