package frontmatter

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

var bareWord = regexp.MustCompile(`^\w+$`)

// Format writes md as a header block followed by content.
//
// Keys listed in keyOrder come first in that order; remaining keys follow
// sorted. Nested objects are indented two spaces with their keys sorted.
// Values are double-quoted when they are empty, carry surrounding
// whitespace, or would otherwise lose a layer of quotes on extraction.
//
// Format returns ErrUnrepresentable for anything Extract could not read back:
// keys or values containing "---" or line breaks, top-level keys that are
// empty or contain a colon, and nested keys that are not bare words.
func Format(md Metadata, content string, keyOrder ...string) (string, error) {
	var sb strings.Builder
	sb.WriteString("---\n")

	for _, key := range orderedKeys(md, keyOrder) {
		if err := checkTopLevelKey(key); err != nil {
			return "", err
		}

		v := md[key]
		switch v.Kind {
		case KindScalar:
			value, err := formatValue(key, v.Scalar)
			if err != nil {
				return "", err
			}
			sb.WriteString(key)
			sb.WriteString(": ")
			sb.WriteString(value)
			sb.WriteString("\n")
		case KindNested:
			sb.WriteString(key)
			sb.WriteString(":\n")
			for _, nk := range slices.Sorted(maps.Keys(v.Nested)) {
				if !bareWord.MatchString(nk) {
					return "", errors.Wrapf(ErrUnrepresentable, "nested key %s.%q", key, nk)
				}
				value, err := formatValue(key+"."+nk, v.Nested[nk])
				if err != nil {
					return "", err
				}
				sb.WriteString("  ")
				sb.WriteString(nk)
				sb.WriteString(": ")
				sb.WriteString(value)
				sb.WriteString("\n")
			}
		default:
			return "", errors.Wrapf(ErrUnrepresentable, "%s: unsupported kind %s", key, v.Kind)
		}
	}

	sb.WriteString("---\n")

	if content = strings.TrimSpace(content); content != "" {
		sb.WriteString("\n")
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func orderedKeys(md Metadata, keyOrder []string) []string {
	keys := make([]string, 0, len(md))
	seen := make(map[string]bool, len(keyOrder))
	for _, k := range keyOrder {
		if _, ok := md[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	var rest []string
	for k := range md {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)

	return append(keys, rest...)
}

func checkTopLevelKey(key string) error {
	switch {
	case key == "", key != strings.TrimFunc(key, isSpace):
		return errors.Wrapf(ErrUnrepresentable, "key %q", key)
	case strings.ContainsAny(key, ":\r\n"), strings.Contains(key, "---"):
		return errors.Wrapf(ErrUnrepresentable, "key %q", key)
	}
	return nil
}

func formatValue(field, value string) (string, error) {
	if strings.ContainsAny(value, "\r\n") || strings.Contains(value, "---") {
		return "", errors.Wrapf(ErrUnrepresentable, "%s value %q", field, value)
	}
	if value == "" || value != strings.TrimFunc(value, isSpace) || unquote(value) != value {
		return `"` + value + `"`, nil
	}
	return value, nil
}
