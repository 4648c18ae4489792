// Package config loads FormattingOptions for the engine.
//
// Options come from three layers, lowest priority first: built-in
// defaults, a TOML file, and LINESMITH_* environment variables. Values
// absent from a layer fall through to the layer below, so an option the
// file does not mention keeps its default.
//
// A fsnotify-based watcher supports live reload: when the file changes,
// the new snapshot is loaded and handed to a callback, which typically
// swaps it into the engine between render cycles. A file that fails to
// reload is logged and the previous snapshot stays in effect.
package config
