// Package config provides the configuration of the richtextarea tool.
//
// Configuration is resolved in layers, later layers overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. A settings file, TOML or YAML by extension
//  3. RICHTEXT_* environment variables
//
// # Configuration Files
//
//	# richtext.toml
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[editor]
//	maxUndoEntries = 50
//
//	[menu]
//	gap = 4
//	viewportWidth = 800
//	viewportHeight = 600
//
// # Environment
//
//	RICHTEXT_LOG_LEVEL, RICHTEXT_LOG_FORMAT
//	RICHTEXT_EDITOR_MAX_UNDO_ENTRIES
//	RICHTEXT_MENU_GAP, RICHTEXT_MENU_VIEWPORT_WIDTH, RICHTEXT_MENU_VIEWPORT_HEIGHT
package config
