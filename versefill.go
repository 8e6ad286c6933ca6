// Package versefill detects scripture references in outline text, resolves
// elliptical citations from context, fetches verse text and renders the
// outline back with the verses attached.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, bloom/) or their
// role in the pipeline (detect/, fetch/, render/).
package versefill
