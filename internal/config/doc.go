// Package config loads folio's configuration.
//
// Configuration is read with Viper from config.yaml in the current
// directory or in $XDG_CONFIG_HOME/folio (see [paths.ConfigDir]). Every key
// can be overridden from the environment with the FOLIO_ prefix, nested
// keys joined by underscores:
//
//	version: 1
//	posts_dir: app/blog/posts   # FOLIO_POSTS_DIR
//	extension: .mdx             # FOLIO_EXTENSION
//	on_malformed: skip          # skip | fail
//	render:
//	  extensions: [table, strikethrough, linkify, tasklist]
//	  sanitize: true
//	  hard_wraps: false
//	server:
//	  addr: 127.0.0.1:3000      # FOLIO_SERVER_ADDR
//
// Call [Init] once, then [Load]. Load validates the result and returns a
// *[ValidationError] listing every invalid field.
package config
