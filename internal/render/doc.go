// Package render converts posts to HTML.
//
// Post content is Markdown rendered with goldmark. The extensions are
// chosen by name (GFM when none are given) and the output can be passed
// through bluemonday's user-generated-content policy. Pages are produced
// from embedded html/template files; a post page ends with an author card
// when the post has an author.
package render
