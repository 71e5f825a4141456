// Package config loads the shell's configuration.
//
// Three sources feed the shell:
//
//   - The key/value file (plain "key: value" per line) supplies paths such
//     as shared_assets, project_dir and working_dir. A missing file is not
//     fatal; the shell logs it and continues with an empty map.
//   - The symbol list names one factory symbol per line. It is re-read every
//     time game mode is entered.
//   - The settings file (.toml, .yaml/.yml or .json) configures the shell
//     itself. DEMON_* environment variables override it.
//
// # Precedence
//
//	┌─────────────────────────────┐
//	│  3. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. DEMON_* Environment     │
//	├─────────────────────────────┤
//	│  1. Settings File           │
//	├─────────────────────────────┤
//	│  0. DefaultSettings()       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - watcher: fsnotify based change detection for modules and the symbol list
package config
