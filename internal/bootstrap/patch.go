package bootstrap

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/eddwinpaz/ez-cli/internal/entity"
)

// Outcome describes what a patch did to the bootstrap file.
type Outcome int

const (
	// Inserted means the registration lines were added.
	Inserted Outcome = iota
	// AlreadyRegistered means a registration line was already present; nothing changed.
	AlreadyRegistered
	// AnchorMissing means neither the marker nor the entry point was found; nothing changed.
	AnchorMissing
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case AlreadyRegistered:
		return "already registered"
	case AnchorMissing:
		return "anchor missing"
	default:
		return "unknown"
	}
}

// Result is the outcome of applying a registration to bootstrap content.
type Result struct {
	Outcome     Outcome
	MarkerAdded bool   // The marker was synthesized before the entry point
	Line        int    // 1-based line of the first inserted registration, 0 if none
	Content     []byte // Updated content; the input unchanged unless Outcome is Inserted
}

// Changed reports whether Content differs from the input.
func (r Result) Changed() bool {
	return r.Outcome == Inserted
}

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenMarker
	tokenEntryPoint
	tokenRegistration
)

// sourceLine is one line of the bootstrap file with its terminator kept apart.
type sourceLine struct {
	text string
	eol  string
	kind tokenKind
}

// Apply inserts the dialect's registration lines for names into content.
// It never modifies content in place.
func Apply(content []byte, d Dialect, names entity.Names) Result {
	want := d.Lines(names)
	lines := scan(content, d, want)

	for _, l := range lines {
		if l.kind == tokenRegistration {
			return Result{Outcome: AlreadyRegistered, Content: content}
		}
	}

	eol := detectEOL(content)

	at := -1
	for i, l := range lines {
		if l.kind == tokenMarker {
			at = i + 1
			break
		}
	}

	markerAdded := false
	if at < 0 {
		for i, l := range lines {
			if l.kind == tokenEntryPoint {
				marker := sourceLine{text: indentOf(l.text) + d.Marker, eol: eol, kind: tokenMarker}
				lines = insertLines(lines, i, marker)
				at = i + 1
				markerAdded = true
				break
			}
		}
	}

	if at < 0 {
		return Result{Outcome: AnchorMissing, Content: content}
	}

	anchor := lines[at-1]
	if anchor.eol == "" {
		lines[at-1].eol = eol
	}

	indent := indentOf(anchor.text)
	inserted := make([]sourceLine, len(want))
	for i, w := range want {
		inserted[i] = sourceLine{text: indent + w, eol: eol, kind: tokenRegistration}
	}
	lines = insertLines(lines, at, inserted...)

	return Result{
		Outcome:     Inserted,
		MarkerAdded: markerAdded,
		Line:        at + 1,
		Content:     join(lines),
	}
}

// scan splits content into lines and classifies each one. Lines are
// compared as token sequences, so reformatted files are still recognised.
func scan(content []byte, d Dialect, registrations []string) []sourceLine {
	marker := normalize(d.Marker)
	entry := normalize(d.EntryPoint)
	wanted := make(map[string]bool, len(registrations))
	for _, r := range registrations {
		wanted[normalize(r)] = true
	}

	var lines []sourceLine
	rest := string(content)
	for rest != "" {
		var text, eol string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			text, rest = rest[:i+1], rest[i+1:]
		} else {
			text, rest = rest, ""
		}
		switch {
		case strings.HasSuffix(text, "\r\n"):
			text, eol = text[:len(text)-2], "\r\n"
		case strings.HasSuffix(text, "\n"):
			text, eol = text[:len(text)-1], "\n"
		}

		c := normalize(text)
		kind := tokenText
		switch {
		case wanted[c]:
			kind = tokenRegistration
		case containsTokens(c, marker):
			kind = tokenMarker
		case containsTokens(c, entry):
			kind = tokenEntryPoint
		}

		lines = append(lines, sourceLine{text: text, eol: eol, kind: kind})
	}
	return lines
}

// normalize splits s into words and single punctuation runes and joins
// them with one space: "var app=builder.Build();" and
// "var app = builder.Build( );" both become "var app = builder . Build ( ) ;".
// Words stay intact, so "Regis ter" never equals "Register".
func normalize(s string) string {
	var tokens []string
	word := -1
	for i, r := range s {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWord {
			if word < 0 {
				word = i
			}
			continue
		}
		if word >= 0 {
			tokens = append(tokens, s[word:i])
			word = -1
		}
		if !unicode.IsSpace(r) {
			tokens = append(tokens, string(r))
		}
	}
	if word >= 0 {
		tokens = append(tokens, s[word:])
	}
	return strings.Join(tokens, " ")
}

// containsTokens reports whether the normalized line contains want as a
// whole-token run.
func containsTokens(line, want string) bool {
	return strings.Contains(" "+line+" ", " "+want+" ")
}

// indentOf returns the leading whitespace of s.
func indentOf(s string) string {
	return s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
}

// detectEOL returns "\r\n" when content uses Windows line endings, "\n" otherwise.
func detectEOL(content []byte) string {
	if bytes.Contains(content, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}

func insertLines(lines []sourceLine, at int, add ...sourceLine) []sourceLine {
	out := make([]sourceLine, 0, len(lines)+len(add))
	out = append(out, lines[:at]...)
	out = append(out, add...)
	return append(out, lines[at:]...)
}

func join(lines []sourceLine) []byte {
	var b bytes.Buffer
	for _, l := range lines {
		b.WriteString(l.text)
		b.WriteString(l.eol)
	}
	return b.Bytes()
}
