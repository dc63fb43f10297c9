// Package textwrap implements greedy word wrapping for ASCII documents.
//
// The wrap algorithm is shared infrastructure for the rasterize pipeline:
// lines wider than the configured width are split on whitespace and repacked
// greedily, one word at a time. Wrapping never invents hyphenation - a single
// word longer than the width is emitted on its own line, unshortened.
package textwrap

import "strings"

// Wrap applies greedy word wrapping to each line of a document.
//
// Rules:
//   - width <= 0 disables wrapping entirely (the input is returned unchanged)
//   - a line whose length is <= width is emitted unchanged
//   - longer lines are split on whitespace and repacked: a word joins the
//     current line if len(current) + len(word) + 1 <= width, otherwise the
//     current line is flushed (without trailing space) and the word starts
//     a new line
//   - a single word longer than width is emitted alone, unbroken
//
// This is a pure function with no side effects. It never returns an error.
func Wrap(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

// WrapText is a convenience wrapper over Wrap that operates on a single
// newline-joined string, as read from a text file.
func WrapText(text string, width int) string {
	return strings.Join(Wrap(strings.Split(text, "\n"), width), "\n")
}

// wrapLine greedily packs the whitespace-delimited words of one over-long
// line into lines of at most width characters. Words longer than width are
// kept whole.
func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		// Line was over-long but all whitespace. Nothing to pack.
		return []string{""}
	}

	var packed []string
	current := ""
	for _, word := range words {
		switch {
		case current == "":
			current = word
		case len(current)+len(word)+1 <= width:
			current += " " + word
		default:
			packed = append(packed, current)
			current = word
		}
	}
	if current != "" {
		packed = append(packed, current)
	}
	return packed
}
