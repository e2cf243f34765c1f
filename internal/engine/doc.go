// Package engine owns the in-memory code index and its supporting caches.
//
// An Engine instance holds four structures populated by BuildIndex and
// discarded by ClearCache:
//
//   - the symbol index (file path -> symbols found in that file)
//   - the modification-time table used for incremental rebuilds
//   - the indexed-files set (every indexable path ever observed)
//   - the content cache (decoded file text keyed by path + mod time)
//
// plus a derived fuzzy-search index over distinct symbol names, rebuilt
// whenever any file is (re)parsed.
//
// # Incremental Indexing
//
// BuildIndex walks the project tree, skipping excluded directories, and
// re-parses only files whose modification time is newer than the stored one.
// Files queued for parsing are processed in fixed-size concurrent batches;
// batches themselves run sequentially, bounding peak concurrency to the
// batch size. Deleted files are swept out of all tracking structures at the
// end of every pass. Per-file read errors remove the file from the index
// rather than aborting the walk.
//
// # Concurrency
//
// Public operations assume a single caller at a time: the surrounding agent
// loop serializes tool calls, so the engine takes no internal locks. Batch
// parsing is the one place with deliberate internal concurrency; it mutates
// shared state only after all goroutines in a batch have finished.
package engine
