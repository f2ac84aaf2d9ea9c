// Package config loads sigcomplete settings.
//
// Settings are read from a TOML or YAML file, chosen by extension, and
// decoded over the built-in defaults so a file only needs the keys it
// changes. A missing file is not an error.
//
// Example (TOML):
//
//	log_level = "debug"
//	scripts = ["macros.lua"]
//
//	[completion]
//	trigger = "$"
//	replace_trigger = false
//
//	[[completion.signals]]
//	name = "clk"
//	description = "system clock"
//
//	[theme]
//	background = "#1e1e2e"
//	info = "#89b4fa"
package config
