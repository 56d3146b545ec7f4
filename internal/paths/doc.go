// Package paths resolves the filesystem locations folio reads and writes.
//
// Configuration lives under the XDG config home (via github.com/adrg/xdg):
//
//	paths.ConfigDir()  // ~/.config/folio on Linux
//	paths.ConfigFile() // ~/.config/folio/config.yaml
//
// FOLIO_CONFIG_DIR overrides ConfigDir, which tests use to isolate
// themselves from the user's real configuration.
package paths
