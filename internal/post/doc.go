// Package post turns a directory of documents into blog posts.
//
// A [Loader] lists the files with the configured extension (".mdx" by
// default) directly inside one directory, reads them concurrently, and runs
// each through [frontmatter.ExtractNamed]. The slug of a post is its file
// name without the extension.
//
// [DecodeMeta] gives the extracted header a typed shape ([Meta], [Author]);
// the untyped fields stay available in [Post.Raw]. [Post.Validate] reports
// missing or malformed fields for `folio check`, and [FormatDate] renders
// publishedAt for display.
package post
