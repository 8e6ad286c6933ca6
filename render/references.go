package render

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/versefill"
)

type citationJSON struct {
	Text       string                  `json:"text"`
	Kind       versefill.CandidateKind `json:"kind"`
	Line       int                     `json:"line"`
	Span       versefill.Span          `json:"span"`
	Confidence float64                 `json:"confidence"`
	Sources    []string                `json:"sources"`
	References []string                `json:"references"`
}

type referencesJSON struct {
	RunID       string                  `json:"runId"`
	Fingerprint string                  `json:"fingerprint"`
	Citations   []citationJSON          `json:"citations"`
	References  []string                `json:"references"`
	Diagnostics versefill.Diagnostics   `json:"diagnostics"`
	Resolver    versefill.ResolverStats `json:"resolver"`
}

// WriteReferences writes the citations and references of det as indented
// JSON for review tools.
func WriteReferences(w io.Writer, det *versefill.Detection) error {
	out := referencesJSON{
		RunID:       det.RunID,
		Fingerprint: det.Fingerprint,
		Citations:   make([]citationJSON, 0, len(det.Candidates)),
		References:  shorts(det.References),
		Diagnostics: det.Diagnostics,
		Resolver:    det.Resolver,
	}
	for _, c := range det.Candidates {
		out.Citations = append(out.Citations, citationJSON{
			Text:       c.Text,
			Kind:       c.Kind,
			Line:       c.Line,
			Span:       c.Span,
			Confidence: c.Confidence,
			Sources:    c.Sources.Names(),
			References: shorts(versefill.Collapse(c.References)),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func shorts(refs []versefill.Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Short()
	}
	return out
}
