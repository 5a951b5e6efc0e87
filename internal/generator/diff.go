package generator

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/eddwinpaz/ez-cli/internal/output"
)

// DiffOptions configures how diffs are generated and displayed.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 3
	ContextLines int

	// TabWidth is the number of spaces each tab character expands to.
	// Default: 4
	TabWidth int

	// Plain disables colour, e.g. when writing to a file.
	Plain bool
}

// DiffGenerator renders line diffs as unified hunks.
//
//	gen := NewDiffGenerator()
//	fmt.Print(gen.GenerateDiffDefault("Program.cs", "Program.cs", before, after))
type DiffGenerator struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffGenerator creates a diff generator that can be reused across files.
func NewDiffGenerator() *DiffGenerator {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &DiffGenerator{dmp: dmp}
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// GenerateDiffDefault uses default options (3 context lines).
func (dg *DiffGenerator) GenerateDiffDefault(oldPath, newPath string, old, newer []byte) string {
	return dg.GenerateDiff(oldPath, newPath, old, newer, nil)
}

// GenerateDiff returns a unified diff of old and newer, or "" when they hold
// the same lines.
func (dg *DiffGenerator) GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	o := DiffOptions{ContextLines: 3, TabWidth: 4}
	if opts != nil {
		o.Plain = opts.Plain
		if opts.ContextLines > 0 {
			o.ContextLines = opts.ContextLines
		}
		if opts.TabWidth > 0 {
			o.TabWidth = opts.TabWidth
		}
	}

	if isBinary(old) || isBinary(newer) {
		if bytes.Equal(old, newer) {
			return ""
		}
		return "Binary files differ\n"
	}

	lines := dg.lineDiff(string(old), string(newer))
	hunks := buildHunks(lines, o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	render := func(s lipgloss.Style, text string) string {
		if o.Plain {
			return text
		}
		return s.Render(text)
	}

	width := output.TerminalWidth() - 2
	var buf strings.Builder
	buf.WriteString(render(headerStyle, "--- "+oldPath) + "\n")
	buf.WriteString(render(headerStyle, "+++ "+newPath) + "\n")
	for _, h := range hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
		buf.WriteString(render(hunkStyle, header) + "\n")
		for _, l := range h.lines {
			text := expandTabs(l.content, o.TabWidth)
			if !o.Plain {
				text = truncateLine(text, width)
			}
			switch l.op {
			case opAdded:
				buf.WriteString(render(addedStyle, "+"+text) + "\n")
			case opRemoved:
				buf.WriteString(render(removedStyle, "-"+text) + "\n")
			default:
				buf.WriteString(" " + text + "\n")
			}
		}
	}
	return buf.String()
}

// Stat counts the lines added and removed between old and newer.
func (dg *DiffGenerator) Stat(old, newer []byte) (added, removed int) {
	for _, l := range dg.lineDiff(string(old), string(newer)) {
		switch l.op {
		case opAdded:
			added++
		case opRemoved:
			removed++
		}
	}
	return added, removed
}

type lineOp int

const (
	opUnchanged lineOp = iota
	opAdded
	opRemoved
)

type diffLine struct {
	oldLineNum int // 0 for added lines
	newLineNum int // 0 for removed lines
	content    string
	op         lineOp
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

// lineDiff runs a line-mode diff and numbers every resulting line.
func (dg *DiffGenerator) lineDiff(old, newer string) []diffLine {
	a, b, table := dg.dmp.DiffLinesToChars(old, newer)
	diffs := dg.dmp.DiffCharsToLines(dg.dmp.DiffMain(a, b, false), table)

	var out []diffLine
	oldN, newN := 0, 0
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldN++
				newN++
				out = append(out, diffLine{oldLineNum: oldN, newLineNum: newN, content: text, op: opUnchanged})
			case diffmatchpatch.DiffDelete:
				oldN++
				out = append(out, diffLine{oldLineNum: oldN, content: text, op: opRemoved})
			case diffmatchpatch.DiffInsert:
				newN++
				out = append(out, diffLine{newLineNum: newN, content: text, op: opAdded})
			}
		}
	}
	return out
}

// buildHunks groups changed lines with up to context unchanged lines on
// either side, merging groups whose context would overlap.
func buildHunks(lines []diffLine, context int) []hunk {
	var hunks []hunk
	i := 0
	for i < len(lines) {
		if lines[i].op == opUnchanged {
			i++
			continue
		}

		start := max(i-context, 0)
		end := i
		for end < len(lines) {
			if lines[end].op != opUnchanged {
				end++
				continue
			}
			run := end
			for run < len(lines) && lines[run].op == opUnchanged {
				run++
			}
			if run == len(lines) || run-end > 2*context {
				end = min(end+context, len(lines))
				break
			}
			end = run
		}

		hunks = append(hunks, newHunk(lines[start:end]))
		i = end
	}
	return hunks
}

func newHunk(lines []diffLine) hunk {
	h := hunk{lines: lines}
	for _, l := range lines {
		if l.op != opAdded {
			if h.oldStart == 0 {
				h.oldStart = l.oldLineNum
			}
			h.oldCount++
		}
		if l.op != opRemoved {
			if h.newStart == 0 {
				h.newStart = l.newLineNum
			}
			h.newCount++
		}
	}
	return h
}

// splitLines splits text into lines without their terminators.
// A trailing newline does not produce an empty last line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func isBinary(data []byte) bool {
	n := min(len(data), 8000)
	return bytes.IndexByte(data[:n], 0) >= 0
}

func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func truncateLine(s string, width int) string {
	if width <= 3 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}
