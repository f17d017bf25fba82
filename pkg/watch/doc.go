// Package watch notifies callers when WDL files change on disk.
//
// A Watcher wraps fsnotify. Directories are watched recursively and events
// are filtered by extension; a single file is watched through its parent
// directory so that atomic saves by editors are not missed. Events are
// batched by a Debouncer and delivered as a sorted set of paths.
package watch
