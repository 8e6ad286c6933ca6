package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/versefill"
)

var (
	scriptureRe    = regexp.MustCompile(`(?i)^scripture\s+readings?\s*:\s*`)
	romanRe        = regexp.MustCompile(`^(X{0,3}(?:IX|IV|VI{0,3}|I{1,3})|X{1,3})\.\s+`)
	letterRe       = regexp.MustCompile(`^([A-Z])\.\s+`)
	numberRe       = regexp.MustCompile(`^(\d{1,2})\.\s+`)
	subLetterRe    = regexp.MustCompile(`^([a-z])\.\s+`)
	continuationRe = regexp.MustCompile(`\d+:\d+|^(?:vv?\.|\d)`)
)

// ParseOutline splits normalized text into outline lines and builds the
// node tree. Title and subtitle lines are the unmarked lines before the
// first marked body line; unmarked lines after the body starts become plain
// children of the current node. Blank lines are skipped.
func ParseOutline(text string) *versefill.Outline {
	p := &outlineParser{outline: &versefill.Outline{}}
	offset := 0
	for i, raw := range strings.Split(text, "\n") {
		lead := len(raw) - len(strings.TrimLeft(raw, " \t"))
		line := strings.TrimRight(raw[lead:], " \t")
		if line != "" {
			p.add(i, offset+lead, line)
		}
		offset += len(raw) + 1
	}
	return p.outline
}

type outlineParser struct {
	outline     *versefill.Outline
	stack       []*versefill.OutlineNode
	prev        *versefill.OutlineNode
	bodyStarted bool
	hasTitle    bool
	lastLetter  byte
}

func (p *outlineParser) add(lineNo, offset int, line string) {
	node := p.classify(line)
	node.Line = lineNo
	node.TextOffset = offset + len(line) - len(node.Text)
	p.prev = node

	if node.Level.IsHeader() {
		p.stack = p.stack[:0]
		p.outline.Nodes = append(p.outline.Nodes, node)
		return
	}

	for len(p.stack) > 0 && p.stack[len(p.stack)-1].Level >= node.Level {
		p.stack = p.stack[:len(p.stack)-1]
	}
	if len(p.stack) > 0 {
		parent := p.stack[len(p.stack)-1]
		parent.Children = append(parent.Children, node)
	} else {
		p.outline.Nodes = append(p.outline.Nodes, node)
	}
	if node.Level != versefill.LevelPlain {
		p.stack = append(p.stack, node)
	}
}

func (p *outlineParser) classify(line string) *versefill.OutlineNode {
	if loc := scriptureRe.FindStringIndex(line); loc != nil {
		return &versefill.OutlineNode{Level: versefill.LevelScriptureReading, Text: line[loc[1]:]}
	}

	if m := romanRe.FindStringSubmatch(line); m != nil && !p.continuesLetters(m[1]) {
		p.bodyStarted = true
		p.lastLetter = 0
		return &versefill.OutlineNode{Level: versefill.LevelRoman, Marker: m[1], Text: line[len(m[0]):]}
	}
	if m := letterRe.FindStringSubmatch(line); m != nil {
		p.bodyStarted = true
		p.lastLetter = m[1][0]
		return &versefill.OutlineNode{Level: versefill.LevelLetter, Marker: m[1], Text: line[len(m[0]):]}
	}
	if m := numberRe.FindStringSubmatch(line); m != nil {
		p.bodyStarted = true
		return &versefill.OutlineNode{Level: versefill.LevelNumber, Marker: m[1], Text: line[len(m[0]):]}
	}
	if m := subLetterRe.FindStringSubmatch(line); m != nil && p.bodyStarted {
		return &versefill.OutlineNode{Level: versefill.LevelPlain, Marker: m[1], Text: line[len(m[0]):]}
	}

	if p.bodyStarted {
		return &versefill.OutlineNode{Level: versefill.LevelPlain, Text: line}
	}
	if p.prev != nil && p.prev.Level == versefill.LevelScriptureReading && continuationRe.MatchString(line) {
		return &versefill.OutlineNode{Level: versefill.LevelScriptureReading, Text: line, Continuation: true}
	}
	if !p.hasTitle {
		p.hasTitle = true
		return &versefill.OutlineNode{Level: versefill.LevelTitle, Text: line}
	}
	return &versefill.OutlineNode{Level: versefill.LevelSubtitle, Text: line}
}

// continuesLetters reports whether a roman-looking single-letter marker is
// really the next letter of the current lettered run ("H." then "I.").
func (p *outlineParser) continuesLetters(marker string) bool {
	return len(marker) == 1 && p.lastLetter != 0 && marker[0] == p.lastLetter+1
}

// CheckStructure records a StructuralInconsistency issue for every line of
// unknown level and every header line that follows the outline body. The
// renderer prints those lines as plain text.
func CheckStructure(outline *versefill.Outline, diag *versefill.Diagnostics) {
	body := false
	outline.Walk(func(n *versefill.OutlineNode, _ int) {
		switch {
		case n.Level < versefill.LevelTitle || n.Level > versefill.LevelPlain:
			diag.Add(versefill.IssueStructuralInconsistency, n.Line, n.Text, "unrecognized outline level")
			body = true
		case n.Level.IsHeader() && body:
			diag.Add(versefill.IssueStructuralInconsistency, n.Line, n.Text,
				fmt.Sprintf("%s line after the outline body", n.Level))
		case !n.Level.IsHeader():
			body = true
		}
	})
}
