package frontmatter

import (
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

const marker = "---"

var (
	// headerPattern matches the first header block anywhere in a document.
	// The body group is non-greedy so the block ends at the next marker.
	headerPattern = regexp.MustCompile(`---\s*([\s\S]*?)\s*---`)

	// nestedFieldPattern matches an indented line with a bare-word key.
	// Indentation may be any Unicode space separator or BOM, not only ASCII
	// whitespace, so a line indented with U+00A0 is still nested.
	nestedFieldPattern = regexp.MustCompile(`^[\s\v\p{Z}\x{FEFF}]+\w+:`)
)

// Extract splits text into its header metadata and trimmed content.
// It returns a *MalformedDocumentError when text has no header block.
func Extract(text string) (Metadata, string, error) {
	return ExtractNamed("", text)
}

// ExtractNamed is like Extract but records name in the returned error so
// callers scanning many documents can tell which one failed.
func ExtractNamed(name, text string) (Metadata, string, error) {
	loc := headerPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, "", &MalformedDocumentError{Name: name}
	}

	content := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])

	s := newScanner()
	for _, line := range strings.Split(headerBlock(text, loc), "\n") {
		s.scan(line)
	}

	return s.metadata, content, nil
}

// headerBlock returns the body of the matched header. When the opening
// marker is followed by a line break, the first header line keeps its
// indentation so it is classified like every other line.
func headerBlock(text string, loc []int) string {
	start := loc[2]
	opener := text[loc[0]+len(marker) : loc[2]]
	if nl := strings.LastIndexByte(opener, '\n'); nl >= 0 {
		start = loc[0] + len(marker) + nl + 1
	}
	return text[start:loc[3]]
}

// ExtractReader reads r fully and extracts it under name.
func ExtractReader(name string, r io.Reader) (Metadata, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", errors.Wrapf(err, "reading %s", name)
	}
	return ExtractNamed(name, string(data))
}

// scanState is the object-building state of a scanner.
type scanState uint8

const (
	stateNoObject scanState = iota
	stateObjectOpen
)

// scanner classifies header lines one at a time. In stateObjectOpen, key
// and object describe the object that indented lines are added to. The
// object is already stored in metadata, so leaving the state never loses it.
type scanner struct {
	state    scanState
	key      string
	object   map[string]string
	metadata Metadata
}

func newScanner() *scanner {
	return &scanner{metadata: Metadata{}}
}

func (s *scanner) scan(line string) {
	if isNestedField(line) {
		if s.state != stateObjectOpen {
			return
		}
		key, value, _ := splitField(line)
		s.object[key] = unquote(value)
		return
	}

	key, value, ok := splitField(line)
	if !ok {
		return
	}

	if value == "" {
		s.open(key)
		return
	}

	s.metadata[key] = ScalarValue(unquote(value))
	s.close()
}

// open starts a fresh object under key, replacing any open one.
func (s *scanner) open(key string) {
	s.state = stateObjectOpen
	s.key = key
	s.object = map[string]string{}
	s.metadata[key] = NestedValue(s.object)
}

func (s *scanner) close() {
	s.state = stateNoObject
	s.key = ""
	s.object = nil
}

// isNestedField reports whether line is indented and starts with a bare
// word followed by a colon.
func isNestedField(line string) bool {
	return nestedFieldPattern.MatchString(line)
}

// splitField splits line on its first colon into a trimmed key and value.
// ok is false when the line has no colon.
func splitField(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimFunc(key, isSpace), strings.TrimFunc(value, isSpace), true
}

// isSpace matches the whitespace nestedFieldPattern accepts as indentation.
func isSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

// unquote removes one layer of quotes when value starts and ends with the
// same quote character. Anything else is returned unchanged.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first != last || (first != '"' && first != '\'') {
		return value
	}
	return value[1 : len(value)-1]
}
