// Package server is the local preview server behind `folio serve`.
//
// It reloads posts from disk on every request and renders them with
// package render. Besides the HTML pages it exposes the same post records
// `folio show --format json` prints under /api/posts.
package server
