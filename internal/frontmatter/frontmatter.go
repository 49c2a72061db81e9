// Package frontmatter splits a redmark document into its metadata header and
// body.
//
// A header is a block of "key: value" lines fenced by two lines holding only
// "---". Parsing is lenient: lines that cannot be read as a key/value pair are
// skipped and a document without a complete header is all body.
package frontmatter

import "strings"

// Delimiter opens and closes a metadata header.
const Delimiter = "---"

const byteOrderMark = "\uFEFF"

// continuationIndent is the minimum indentation, in columns, of a line that
// continues a value left empty on its key line.
const continuationIndent = 2

// Document is a parsed source file.
type Document struct {
	Metadata Metadata
	Body     string
}

// Parse extracts the header metadata and body from raw. It never fails.
func Parse(raw string) Document {
	lines := SplitLines(raw)
	start, end, ok := headerBounds(lines)
	if !ok {
		return Document{Body: strings.TrimSpace(strings.TrimPrefix(raw, byteOrderMark))}
	}
	return Document{
		Metadata: parseHeader(lines[start+1 : end]),
		Body:     strings.TrimSpace(strings.Join(lines[end+1:], "\n")),
	}
}

// SplitLines splits s on "\n" and drops a trailing "\r" from each line.
func SplitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// BodyStart returns the index of the first line after a header, or 0 when
// lines do not start with one.
func BodyStart(lines []string) int {
	_, end, ok := headerBounds(lines)
	if !ok {
		return 0
	}
	return end + 1
}

// headerBounds locates the opening and closing delimiter lines. Leading blank
// lines and a byte-order mark may precede the opening delimiter.
func headerBounds(lines []string) (start, end int, ok bool) {
	start = -1
	for i, l := range lines {
		if i == 0 {
			l = strings.TrimPrefix(l, byteOrderMark)
		}
		t := strings.TrimSpace(l)
		if t == "" {
			continue
		}
		if t != Delimiter {
			return 0, 0, false
		}
		start = i
		break
	}
	if start < 0 {
		return 0, 0, false
	}
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			return start, i, true
		}
	}
	return 0, 0, false
}

func parseHeader(lines []string) Metadata {
	var m Metadata
	for i := 0; i < len(lines); i++ {
		key, raw, found := strings.Cut(lines[i], ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			var parts []string
			for i+1 < len(lines) && isContinuation(lines[i+1]) {
				i++
				parts = append(parts, strings.TrimSpace(lines[i]))
			}
			raw = strings.Join(parts, " ")
		}
		m.set(key, parseValue(raw))
	}
	return m
}

func isContinuation(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return IndentWidth(line) >= continuationIndent
}

// IndentWidth measures the leading whitespace of line in columns. A space
// counts one column and a tab counts two.
func IndentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 2
		default:
			return w
		}
	}
	return w
}

func parseValue(raw string) Value {
	v := unquote(raw)
	if len(v) >= 2 && v[0] == '[' && v[len(v)-1] == ']' {
		return ListValue(splitList(v[1 : len(v)-1]))
	}
	switch {
	case strings.EqualFold(v, "true"):
		return BoolValue(true)
	case strings.EqualFold(v, "false"):
		return BoolValue(false)
	}
	return StringValue(v)
}

func splitList(inner string) []string {
	items := []string{}
	if strings.TrimSpace(inner) == "" {
		return items
	}
	for _, part := range strings.Split(inner, ",") {
		item := unquote(strings.TrimSpace(part))
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}
