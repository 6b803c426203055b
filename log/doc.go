// Package log provides the leveled logging used across vizscript.
//
// The Logger interface has four printf-style methods (Debug, Info, Warn,
// Error). Two implementations ship with the module: DefaultLogger on the
// standard library's log package, and GologLogger wrapping
// github.com/kataras/golog for callers already using it.
//
// A package-level default logger backs the free functions log.Debug,
// log.Info, log.Warn and log.Error; the graph loader and the importer report
// through it. Swap it with SetDefaultLogger, or silence everything with
// NoOpLogger:
//
//	log.SetDefaultLogger(&log.NoOpLogger{})
//
// Messages below the configured level are dropped before formatting.
// DefaultLogger is safe for concurrent use; the stdlib logger serializes
// writes internally.
package log
