package pdfcpu

import (
	"strings"
	"unicode"
)

// lineTolerance is the vertical distance within which two text runs are
// considered to sit on the same visual line.
const lineTolerance = 3.0

// assembleText orders positioned text runs into reading order: lines top to
// bottom, runs within a line left to right. Headings end up on lines of
// their own, which the section grammars depend on.
func assembleText(runs []textRun) string {
	if len(runs) == 0 {
		return ""
	}

	sorted := sortedByReadingOrder(runs)

	var out strings.Builder
	lineY := sorted[0].y
	var line []string

	flush := func() {
		if s := cleanLine(strings.Join(line, " ")); s != "" {
			out.WriteString(s)
			out.WriteByte('\n')
		}
		line = line[:0]
	}

	for _, run := range sorted {
		if lineY-run.y > lineTolerance {
			flush()
			lineY = run.y
		}
		line = append(line, run.text)
	}
	flush()

	return out.String()
}

// cleanLine collapses whitespace runs inside one assembled line and drops
// non-printable bytes left by encoding quirks.
func cleanLine(s string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
