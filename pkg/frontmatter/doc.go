// Package frontmatter extracts header metadata and body content from blog
// post documents.
//
// A document carries a header block bounded by "---" markers followed by
// free-form content:
//
//	---
//	title: "Hello, World"
//	publishedAt: 2024-01-01T10:00:00
//	author:
//	  name: Jane Doe
//	  bio: Systems engineer
//	---
//
//	Post body here.
//
// This is not YAML. Each header line is either a top-level "key: value"
// scalar, a top-level "key:" that opens a nested object, or an indented
// "  key: value" that belongs to the most recently opened object. Only one
// level of nesting exists. Values are split on the first colon, trimmed, and
// lose one layer of matching single or double quotes.
//
// Header indentation and key and value trimming treat every Unicode space
// separator (U+00A0, U+3000 and so on) and the byte order mark U+FEFF as
// whitespace, in addition to ASCII spaces and tabs. U+0085 is not.
//
// # Basic Usage
//
//	md, content, err := frontmatter.Extract(text)
//	if err != nil {
//		return err
//	}
//	title, _ := md.GetString("title")
//	author, _ := md.GetNested("author")
//
// # Error Handling
//
// The extractor is best-effort and does not validate. Orphan indented lines,
// lines without a colon, and repeated keys are silently dropped or
// overwritten. The only failure is a document with no header block, reported
// as a [*MalformedDocumentError] that matches [ErrMalformedDocument]:
//
//	if errors.Is(err, frontmatter.ErrMalformedDocument) {
//		// skip the document
//	}
//
// # Writing
//
// [Format] writes metadata back out in the same restricted form, rejecting
// values the extractor could not read back.
package frontmatter
