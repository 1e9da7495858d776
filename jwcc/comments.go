// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jwcc

import (
	"strings"

	"github.com/creachadair/rjson/ast"
	"github.com/tailscale/hujson"
)

// appendComment appends the source text of c to x. Line comments end with a
// newline. Multi-line text is outdented so that continuation lines line up
// flush left under the comment marker.
func appendComment(x hujson.Extra, c ast.Comment) hujson.Extra {
	lines := strings.Split(c.String(), "\n")
	outdentCommentLines(lines)
	if c.Block && !strings.Contains(c.String(), "*/") {
		if len(lines) == 1 {
			return append(x, "/* "+lines[0]+" */\n"...)
		}
		x = append(x, "/*\n"...)
		for _, line := range lines {
			x = append(x, " "+line+"\n"...)
		}
		return append(x, "*/\n"...)
	}
	for _, line := range lines {
		if line == "" {
			x = append(x, "//\n"...)
		} else {
			x = append(x, "// "+line+"\n"...)
		}
	}
	return x
}

// CleanComments removes comment markers from the given comments and
// combines their text, returning a slice of plain lines of text. Leading and
// trailing spaces are removed from the lines.
func CleanComments(coms ...ast.Comment) []string {
	var out []string
	for _, com := range coms {
		lines := strings.Split(com.String(), "\n")
		outdentCommentLines(lines)
		for _, line := range lines {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

// trimSpaceSuffix removes whitespace from the suffix of s.
func trimSpaceSuffix(s string) string { return strings.TrimRight(s, " \t\r") }

// outdentCommentLines modifies lines to remove the shortest prefix of leading
// indentation that can be removed to leave the text flush left, and any
// trailing whitespace. It returns the count of indentation characters removed.
// The first line is assumed to be already cleaned of leading whitespace.
func outdentCommentLines(lines []string) int {
	// Find the shortest common indentation of the non-blank lines after the
	// first. The first line is already flush, because the parser trimmed it.
	pfx := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var ns int
		for _, c := range line {
			if c != ' ' && c != '\t' {
				break
			}
			ns++
		}
		if pfx < 0 || ns < pfx {
			pfx = ns
		}
	}
	if pfx < 0 {
		pfx = 0
	}

	lines[0] = trimSpaceSuffix(lines[0])
	for i, line := range lines[1:] {
		if len(line) < pfx {
			line = strings.TrimLeft(line, " \t")
		} else {
			line = line[pfx:]
		}
		lines[i+1] = trimSpaceSuffix(line)
	}
	return pfx
}
