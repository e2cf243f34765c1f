package engine

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tbrandt/codescout-mcp/internal/fuzzy"
	"github.com/tbrandt/codescout-mcp/internal/ignore"
	"github.com/tbrandt/codescout-mcp/internal/parser"
	"github.com/tbrandt/codescout-mcp/pkg/types"
)

const (
	// parseBatchSize bounds how many files are read and parsed concurrently
	parseBatchSize = 10

	// freshnessWindow is how long a non-empty index is trusted without
	// re-walking the tree
	freshnessWindow = 60 * time.Second

	// contentCacheSize bounds the decoded-text cache
	contentCacheSize = 2048
)

// contentEntry is a cached decoded file, valid while the file's modification
// time is unchanged
type contentEntry struct {
	content string
	modTime time.Time
}

// pendingFile is a file queued for parsing. Its mod-time is committed to the
// table only after the parse result is applied, so an aborted build leaves
// unparsed files queued for the next pass.
type pendingFile struct {
	path    string
	modTime time.Time
}

// Engine maintains the in-memory symbol index for one project root.
// All mutation happens in BuildIndex and ClearCache; query methods treat the
// structures as immutable snapshots for the duration of a call.
type Engine struct {
	root   string
	loader *ignore.Loader
	parser *parser.Parser
	logger *slog.Logger

	index        map[string][]types.CodeSymbol // absolute path -> symbols
	modTimes     map[string]time.Time
	indexedFiles map[string]struct{}
	contentCache *lru.Cache[string, contentEntry]
	fuzzyIndex   *fuzzy.Index
	lastBuilt    time.Time
}

// BuildStats reports what a single BuildIndex pass did
type BuildStats struct {
	FilesParsed  int
	FilesRemoved int
	Duration     time.Duration
}

// New creates an Engine rooted at the given project directory
func New(root string, logger *slog.Logger) (*Engine, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root path %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", absRoot)
	}

	cache, err := lru.New[string, contentEntry](contentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create content cache: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		root:         absRoot,
		loader:       ignore.NewLoader(absRoot),
		parser:       parser.New(),
		logger:       logger,
		index:        make(map[string][]types.CodeSymbol),
		modTimes:     make(map[string]time.Time),
		indexedFiles: make(map[string]struct{}),
		contentCache: cache,
	}, nil
}

// Root returns the absolute index root
func (e *Engine) Root() string {
	return e.root
}

// BuildIndex walks the project tree and brings the index up to date.
// With force set, all cached structures are discarded before walking.
// Per-file and per-directory errors never abort the pass; the only error
// returned is context cancellation.
func (e *Engine) BuildIndex(ctx context.Context, force bool) (*BuildStats, error) {
	start := time.Now()
	stats := &BuildStats{}

	if !force && len(e.index) > 0 && time.Since(e.lastBuilt) < freshnessWindow {
		return stats, nil
	}

	if force {
		e.reset()
	}

	// Discover added/changed files. Stored modification times are updated
	// only when parse results are applied, never during the walk.
	var queued []pendingFile
	walkErr := filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			e.logger.Debug("skipping inaccessible path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == e.root {
				return nil
			}
			rel, relErr := filepath.Rel(e.root, path)
			if relErr != nil {
				rel = d.Name()
			}
			if e.loader.ExcludeDir(d.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := parser.LanguageForPath(path); !ok {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			e.logger.Debug("skipping unstatable file", "path", path, "error", infoErr)
			return nil
		}
		e.indexedFiles[path] = struct{}{}

		stored, seen := e.modTimes[path]
		if !seen || info.ModTime().After(stored) {
			queued = append(queued, pendingFile{path: path, modTime: info.ModTime()})
		}
		return nil
	})
	if walkErr != nil {
		// WalkDir only propagates errors from the callback, which returns none
		e.logger.Debug("walk terminated early", "error", walkErr)
	}

	if err := e.parseBatches(ctx, queued); err != nil {
		return nil, err
	}
	stats.FilesParsed = len(queued)

	stats.FilesRemoved = e.sweepDeleted()

	if len(queued) > 0 || force || e.fuzzyIndex == nil {
		e.rebuildFuzzyIndex()
	}

	e.lastBuilt = time.Now()
	stats.Duration = time.Since(start)
	return stats, nil
}

// parseBatches reads and parses files in fixed-size concurrent batches.
// Batches run sequentially; within a batch each file is handled by its own
// goroutine. Index and mod-time mutation happens only between batches, so a
// cancelled build leaves every unapplied file queued for the next pass.
func (e *Engine) parseBatches(ctx context.Context, files []pendingFile) error {
	for i := 0; i < len(files); i += parseBatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := i + parseBatchSize
		if end > len(files) {
			end = len(files)
		}
		batch := files[i:end]
		results := make([][]types.CodeSymbol, len(batch))
		failed := make([]bool, len(batch))

		g, _ := errgroup.WithContext(ctx)
		for j, f := range batch {
			g.Go(func() error {
				content, err := e.readFile(f.path)
				if err != nil {
					e.logger.Debug("failed to read file", "path", f.path, "error", err)
					failed[j] = true
					return nil
				}
				lang, _ := parser.LanguageForPath(f.path)
				rel, relErr := filepath.Rel(e.root, f.path)
				if relErr != nil {
					rel = f.path
				}
				results[j] = e.parser.Parse(filepath.ToSlash(rel), content, lang)
				return nil
			})
		}
		_ = g.Wait() // workers never return errors

		for j, f := range batch {
			if failed[j] {
				// Unreadable files drop out entirely and are retried on
				// the next pass
				delete(e.index, f.path)
				delete(e.modTimes, f.path)
				continue
			}
			e.modTimes[f.path] = f.modTime
			if len(results[j]) == 0 {
				// Zero-symbol files are absent from the index but keep
				// their mod-time entry so they are not re-parsed every pass
				delete(e.index, f.path)
				continue
			}
			e.index[f.path] = results[j]
		}
	}
	return nil
}

// sweepDeleted removes entries for files that no longer exist on disk.
// The mod-time table is swept too so zero-symbol files do not linger.
func (e *Engine) sweepDeleted() int {
	removed := 0
	for path := range e.modTimes {
		if _, err := os.Stat(path); err != nil {
			if _, indexed := e.index[path]; indexed {
				removed++
			}
			delete(e.index, path)
			delete(e.modTimes, path)
			delete(e.indexedFiles, path)
		}
	}
	return removed
}

// rebuildFuzzyIndex derives the fuzzy-search structure from the distinct set
// of symbol names currently indexed
func (e *Engine) rebuildFuzzyIndex() {
	seen := make(map[string]struct{})
	var names []string
	for _, symbols := range e.index {
		for _, sym := range symbols {
			if _, dup := seen[sym.Name]; dup {
				continue
			}
			seen[sym.Name] = struct{}{}
			names = append(names, sym.Name)
		}
	}
	sort.Strings(names)
	e.fuzzyIndex = fuzzy.NewIndex(names)
}

// readFile returns decoded file text through the content cache. A cached
// entry is valid while the file's modification time is unchanged.
func (e *Engine) readFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if entry, ok := e.contentCache.Get(path); ok && entry.modTime.Equal(info.ModTime()) {
		return entry.content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	content := string(data)
	e.contentCache.Add(path, contentEntry{content: content, modTime: info.ModTime()})
	return content, nil
}

// reset discards all cached structures
func (e *Engine) reset() {
	e.index = make(map[string][]types.CodeSymbol)
	e.modTimes = make(map[string]time.Time)
	e.indexedFiles = make(map[string]struct{})
	e.contentCache.Purge()
	e.fuzzyIndex = nil
	e.lastBuilt = time.Time{}
}

// ClearCache discards all cached structures and resets the cache age to zero
func (e *Engine) ClearCache() {
	e.reset()
}

// Stats reports the current state of the index
func (e *Engine) Stats() types.IndexStats {
	stats := types.IndexStats{
		// Zero-symbol files count toward the total; the indexed-files set
		// tracks every indexable file observed, not just symbol-bearing ones
		TotalFiles:        len(e.indexedFiles),
		LanguageBreakdown: make(map[string]int),
		SymbolBreakdown:   make(map[types.SymbolKind]int),
	}

	for _, symbols := range e.index {
		if len(symbols) > 0 {
			stats.LanguageBreakdown[symbols[0].Language]++
		}
		stats.TotalSymbols += len(symbols)
		for _, sym := range symbols {
			stats.SymbolBreakdown[sym.Type]++
		}
	}

	if e.fuzzyIndex != nil {
		stats.FuzzyCorpusSize = e.fuzzyIndex.Size()
	}
	if !e.lastBuilt.IsZero() {
		stats.CacheAge = time.Since(e.lastBuilt)
	}

	return stats
}

// Symbols returns a flattened snapshot of all indexed symbols in stable
// (path, line) order
func (e *Engine) Symbols() []types.CodeSymbol {
	paths := make([]string, 0, len(e.index))
	for path := range e.index {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var all []types.CodeSymbol
	for _, path := range paths {
		all = append(all, e.index[path]...)
	}
	return all
}

// FileSymbols returns the cached symbol list for one file, or nil if the
// file is not indexed. Relative paths are resolved against the root.
func (e *Engine) FileSymbols(path string) []types.CodeSymbol {
	return e.index[e.absPath(path)]
}

// FuzzyFind runs the fuzzy index over a query, returning matched names best
// first. Returns types.ErrFuzzyUnavailable before the first build.
func (e *Engine) FuzzyFind(query string) ([]string, error) {
	if e.fuzzyIndex == nil {
		return nil, types.ErrFuzzyUnavailable
	}
	return e.fuzzyIndex.Find(query)
}

func (e *Engine) absPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.root, path)
}
