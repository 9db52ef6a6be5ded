// Package document models CGX source text as an ordered sequence of
// newline-terminated lines and provides span-based reassembly: transformed
// regions are spliced back into the original line sequence without touching
// anything outside their spans.
package document

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Document is an immutable line-addressed view of source text. Lines are
// 0-indexed and keep their trailing newline; only the final line may lack
// one.
type Document struct {
	content string
	lines   []string
}

// New creates a Document from raw text.
func New(content string) *Document {
	return &Document{content: content, lines: SplitLines(content)}
}

// SplitLines splits text into lines, each keeping its trailing newline.
// The final element has no newline when the text does not end with one.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	for {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:idx+1])
		content = content[idx+1:]
		if content == "" {
			break
		}
	}
	return lines
}

// Content returns the original text.
func (d *Document) Content() string {
	return d.content
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Lines returns a copy of the document's lines.
func (d *Document) Lines() []string {
	return slices.Clone(d.lines)
}

// Slice returns a copy of lines in the half-open range [start, end),
// clamped to the document bounds.
func (d *Document) Slice(start, end int) []string {
	start = max(start, 0)
	end = min(end, len(d.lines))
	if start >= end {
		return nil
	}
	return slices.Clone(d.lines[start:end])
}

// Replacement pairs transformed lines with the half-open line span they
// replace in the original document. Lines must be newline-terminated.
type Replacement struct {
	Lines []string
	Start int
	End   int
}

// Reassemble splices the replacements into the document's line sequence and
// returns the final text. Replacements are applied by descending start line
// so earlier splices never invalidate the spans of later ones; lines outside
// every span are reproduced byte-for-byte. The result is guaranteed to end
// with exactly one trailing newline.
//
// Reassembly is all-or-nothing: invalid or overlapping spans return an error
// and no output, so callers can fall back to the original content.
func Reassemble(d *Document, replacements []Replacement) (string, error) {
	reps := slices.Clone(replacements)
	sort.SliceStable(reps, func(i, j int) bool {
		return reps[i].Start > reps[j].Start
	})

	for i, rep := range reps {
		if rep.Start < 0 || rep.Start > rep.End || rep.End > len(d.lines) {
			return "", fmt.Errorf("replacement span [%d, %d) out of range for %d lines", rep.Start, rep.End, len(d.lines))
		}
		// reps are ordered by descending start: the next one must end at or
		// before this one's start
		if i+1 < len(reps) && reps[i+1].End > rep.Start {
			return "", fmt.Errorf("overlapping replacement spans [%d, %d) and [%d, %d)",
				reps[i+1].Start, reps[i+1].End, rep.Start, rep.End)
		}
	}

	lines := slices.Clone(d.lines)
	for _, rep := range reps {
		lines = slices.Concat(lines[:rep.Start], rep.Lines, lines[rep.End:])
	}

	out := strings.Join(lines, "")
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}
