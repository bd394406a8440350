// Package config provides gale's settings.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. The config file, TOML or YAML by extension. Without --config the
//     file is $XDG_CONFIG_HOME/gale/config.toml (or config.yaml).
//  3. Environment variables such as GALE_EDITOR_TAB_SIZE=2
//
// A minimal TOML file:
//
//	[editor]
//	tab_size = 2
//	undo_window = "300ms"
//
//	[display]
//	line_numbers = "relative"
//	status_bar = "filename-lines\\modified/cursor"
//
//	[colors]
//	status_bar = "BLACK_CYAN"
//
// The YAML layout of earlier releases ("editor behaviour", "tab size",
// "display colour" ...) is still accepted.
//
// # Sub-packages
//
//   - loader: file and environment loading into generic maps
//   - watcher: fsnotify based live reload
//   - notify: change notification for reloads
package config
