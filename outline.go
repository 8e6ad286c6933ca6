package versefill

// Level is the structural level of an outline line.
type Level int

// Level constants, from the highest rank to the lowest.
const (
	LevelTitle Level = iota
	LevelSubtitle
	LevelScriptureReading
	LevelRoman
	LevelLetter
	LevelNumber
	LevelPlain
)

var levelNames = [...]string{"title", "subtitle", "scripture_reading", "roman", "letter", "number", "plain"}

// String returns the level name.
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLevel maps a level name back to a Level. Unknown names report false.
func ParseLevel(s string) (Level, bool) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), true
		}
	}
	return LevelPlain, false
}

// IsHeader reports whether the level belongs to the document header
// (title, subtitle, scripture reading).
func (l Level) IsHeader() bool {
	return l <= LevelScriptureReading
}

// OutlineNode is one line of the outline. Text excludes the structural
// marker ("I.", "A.", "Scripture Reading:"); TextOffset is the byte offset
// of Text in the normalized document.
type OutlineNode struct {
	Level        Level          `json:"level"`
	Marker       string         `json:"marker,omitempty"`
	Text         string         `json:"text"`
	Line         int            `json:"line"`
	TextOffset   int            `json:"offset"`
	Continuation bool           `json:"continuation,omitempty"`
	Children     []*OutlineNode `json:"children,omitempty"`
	Citations    []*Candidate   `json:"-"`
	References   []Reference    `json:"references,omitempty"`
}

// Attach adds a citation to the node, keeping only references not yet
// attached to this line. It reports whether any reference was kept.
func (n *OutlineNode) Attach(c *Candidate) bool {
	seen := make(map[string]bool, len(n.References))
	for _, r := range n.References {
		seen[r.Key()] = true
	}
	kept := c.References[:0:0]
	for _, r := range c.References {
		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return false
	}
	c.References = kept
	n.Citations = append(n.Citations, c)
	n.References = append(n.References, kept...)
	return true
}

// Outline is a parsed document: top-level nodes in document order. Header
// nodes never have children.
type Outline struct {
	Nodes []*OutlineNode `json:"nodes"`
}

// Walk calls fn for every node in document order.
func (o *Outline) Walk(fn func(n *OutlineNode, depth int)) {
	var walk func(nodes []*OutlineNode, depth int)
	walk = func(nodes []*OutlineNode, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(o.Nodes, 0)
}

// Lines returns every node in document order.
func (o *Outline) Lines() []*OutlineNode {
	var out []*OutlineNode
	o.Walk(func(n *OutlineNode, _ int) { out = append(out, n) })
	return out
}
