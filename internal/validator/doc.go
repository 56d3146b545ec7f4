// Package validator collects and reports problems found in posts.
//
// A [Result] aggregates [Issue] values of two severities: errors make
// `folio check` fail, warnings are reported but do not. Results for
// individual posts are combined with [Result.Merge], which tags each issue
// with the post it came from, and written by a [Reporter] as text or JSON.
//
//	all := &validator.Result{}
//	for _, p := range posts {
//		all.Merge(p.Slug, p.Validate())
//	}
//	validator.NewReporter(os.Stdout, validator.FormatText).Report(all, len(posts))
package validator
