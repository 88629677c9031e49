package subtitle

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	dialoguePrefix = "Dialogue:"

	// Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
	dialogueFieldCount = 10
	startFieldIndex    = 1
	textFieldIndex     = 9
)

// DecodeScript decodes raw script bytes as UTF-8, dropping a leading
// byte-order mark and replacing ill-formed sequences with U+FFFD.
func DecodeScript(raw []byte) string {
	decoded, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		// not expected from a replacing decoder
		return strings.ToValidUTF8(strings.TrimPrefix(string(raw), "\ufeff"), "\ufffd")
	}
	return string(decoded)
}

// Extract scans an ASS/SSA document and returns one entry per usable
// Dialogue line, in document order. Lines that cannot be used are
// recorded in Skipped rather than failing the document.
func Extract(doc string) Extraction {
	ext := Extraction{
		Entries: make([]Entry, 0),
		Skipped: make([]Skip, 0),
	}

	for i, line := range splitLines(doc) {
		lineNum := i + 1

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if !strings.HasPrefix(line, dialoguePrefix) {
			continue
		}

		entry, reason, ok := parseDialogueLine(line)
		if !ok {
			ext.Skipped = append(ext.Skipped, Skip{Line: lineNum, Reason: reason})
			continue
		}
		ext.Entries = append(ext.Entries, entry)
	}

	return ext
}

func parseDialogueLine(line string) (Entry, SkipReason, bool) {
	parts := splitASSFields(line, dialogueFieldCount)
	if len(parts) < dialogueFieldCount {
		return Entry{}, SkipMalformed, false
	}

	display, total, err := ParseTimecode(parts[startFieldIndex])
	if err != nil {
		return Entry{}, SkipBadTimecode, false
	}

	text := Sanitize(strings.TrimSpace(parts[textFieldIndex]))
	if text == "" {
		return Entry{}, SkipEmptyPayload, false
	}

	return Entry{Time: total, Display: display, Text: text}, "", true
}

// splits on commas into at most numFields parts, the last part keeps
// any remaining commas
func splitASSFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}

	parts := make([]string, 0, numFields)
	remaining := content

	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			parts = append(parts, remaining)
			return parts
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}

	parts = append(parts, remaining)

	return parts
}

// splits on every Unicode line boundary (\n, \r, \r\n, \v, \f, \x1c-\x1e,
// \x85, U+2028, U+2029); a trailing boundary does not add an empty line
func splitLines(doc string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(doc); {
		r, size := utf8.DecodeRuneInString(doc[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}
		lines = append(lines, doc[start:i])
		i += size
		if r == '\r' && i < len(doc) && doc[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(doc) {
		lines = append(lines, doc[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
