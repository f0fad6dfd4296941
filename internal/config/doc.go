// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.gopher/gopher.toml or OS-specific config directory)
// 3. Project config file (gopher.toml, .gopher.toml or .gopher/gopher.toml)
// 4. Environment variables (GOPHER_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// Config files are checked against an embedded JSON Schema before they are
// applied, and the source of every effective value is recorded.
//
// User-level config locations:
// - ~/.gopher/gopher.toml (preferred)
// - Windows: %APPDATA%\gopher\gopher.toml
// - macOS: ~/Library/Application Support/gopher/gopher.toml
// - Linux/BSD: $XDG_CONFIG_HOME/gopher/gopher.toml or ~/.config/gopher/gopher.toml
package config
