package fleet

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

// LineKind classifies one line of a diff.
type LineKind int

const (
	Common LineKind = iota
	Added
	Removed
)

// DiffLine is one line of a line-level comparison. NoEOL marks a final line
// that lacks a trailing newline.
type DiffLine struct {
	Kind  LineKind
	Text  string
	NoEOL bool
}

// DiffLines compares current (the site's file) against proposed (the
// template's) line by line.
func DiffLines(current, proposed string) []DiffLine {
	a := splitLines(current)
	b := splitLines(proposed)

	var out []DiffLine
	emit := func(kind LineKind, lines []string) {
		for _, l := range lines {
			out = append(out, DiffLine{
				Kind:  kind,
				Text:  strings.TrimSuffix(l, "\n"),
				NoEOL: !strings.HasSuffix(l, "\n"),
			})
		}
	}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			emit(Common, a[op.I1:op.I2])
		case 'd':
			emit(Removed, a[op.I1:op.I2])
		case 'i':
			emit(Added, b[op.J1:op.J2])
		case 'r':
			emit(Removed, a[op.I1:op.I2])
			emit(Added, b[op.J1:op.J2])
		}
	}
	return out
}

// RenderDiff formats lines as a unified diff from the site's file to the
// template's, labelled with rel. It returns "" when nothing changed.
func RenderDiff(lines []DiffLine, rel string) string {
	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.Kind == Common {
			continue
		}
		changed = true
		for j := max(0, i-diffContext); j <= min(len(lines)-1, i+diffContext); j++ {
			keep[j] = true
		}
	}
	if !changed {
		return ""
	}

	// Line numbers on each side before line i.
	oldAt := make([]int, len(lines))
	newAt := make([]int, len(lines))
	o, n := 0, 0
	for i, l := range lines {
		oldAt[i], newAt[i] = o, n
		if l.Kind != Added {
			o++
		}
		if l.Kind != Removed {
			n++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- site/%s\n+++ template/%s\n", rel, rel)
	for start := 0; start < len(lines); {
		if !keep[start] {
			start++
			continue
		}
		end := start
		oldCount, newCount := 0, 0
		for end < len(lines) && keep[end] {
			if lines[end].Kind != Added {
				oldCount++
			}
			if lines[end].Kind != Removed {
				newCount++
			}
			end++
		}
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", hunkRange(oldAt[start], oldCount), hunkRange(newAt[start], newCount))
		for _, l := range lines[start:end] {
			switch l.Kind {
			case Added:
				b.WriteByte('+')
			case Removed:
				b.WriteByte('-')
			default:
				b.WriteByte(' ')
			}
			b.WriteString(l.Text)
			b.WriteByte('\n')
			if l.NoEOL {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
		start = end
	}
	return b.String()
}

// hunkRange formats one side of a hunk header. An empty side points at the
// line before the hunk.
func hunkRange(before, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	if count == 1 {
		return fmt.Sprintf("%d", before+1)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}

// splitLines splits s after each newline, keeping the terminator so that a
// missing final newline stays visible to the matcher.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
