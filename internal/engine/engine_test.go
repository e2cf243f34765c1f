package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tbrandt/codescout-mcp/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newFixtureTree writes a small multi-language project and returns its root
func newFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"a.ts": "function getFileContent() {}\n",
		"src/walker.go": `package walker

func Walk(root string) error {
	return nil
}
`,
		"empty.ts": "// no declarations here\n",
		"node_modules/dep/index.js": "function hidden() {}\n",
		"README.md":                 "# not indexable\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newTestEngine(t *testing.T, root string) *Engine {
	t.Helper()
	eng, err := New(root, nil)
	require.NoError(t, err)
	return eng
}

func TestNew_InvalidRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestBuildIndex_Basic(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	stats, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.FilesParsed, "a.ts, src/walker.go, empty.ts")

	idxStats := eng.Stats()
	assert.Equal(t, 3, idxStats.TotalFiles, "zero-symbol files count toward the file total")
	assert.Equal(t, 1, idxStats.LanguageBreakdown["typescript"])
	assert.Equal(t, 1, idxStats.LanguageBreakdown["go"])
	assert.Positive(t, idxStats.FuzzyCorpusSize)

	// Excluded directories are never indexed
	for _, sym := range eng.Symbols() {
		assert.NotContains(t, sym.FilePath, "node_modules")
	}
}

func TestBuildIndex_Incremental(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	_, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)

	// Bypass the freshness window so the walk actually runs again
	eng.lastBuilt = time.Time{}

	stats, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, stats.FilesParsed, "no filesystem changes means zero re-parses")
}

func TestBuildIndex_ReparsesChangedFile(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	_, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)

	target := filepath.Join(root, "a.ts")
	require.NoError(t, os.WriteFile(target, []byte("function renamedContent() {}\n"), 0644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(target, future, future))

	eng.lastBuilt = time.Time{}
	stats, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesParsed)

	names := symbolNames(eng)
	assert.Contains(t, names, "renamedContent")
	assert.NotContains(t, names, "getFileContent")
}

func TestBuildIndex_FreshnessWindow(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	_, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)

	// A fresh, non-empty index short-circuits the walk entirely
	target := filepath.Join(root, "a.ts")
	require.NoError(t, os.Remove(target))

	stats, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, stats.FilesParsed)
	assert.Zero(t, stats.FilesRemoved)
}

func TestBuildIndex_DeletionSweep(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	_, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)

	target := filepath.Join(root, "a.ts")
	require.NoError(t, os.Remove(target))

	_, err = eng.BuildIndex(context.Background(), true)
	require.NoError(t, err)

	_, inIndex := eng.index[target]
	_, inModTimes := eng.modTimes[target]
	_, inFiles := eng.indexedFiles[target]
	assert.False(t, inIndex)
	assert.False(t, inModTimes)
	assert.False(t, inFiles)
	assert.NotContains(t, symbolNames(eng), "getFileContent")
}

func TestBuildIndex_TrackingParity(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	_, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)

	// Every indexed path has a mod-time entry
	for path, symbols := range eng.index {
		assert.NotEmpty(t, symbols, "indexed files always hold at least one symbol")
		_, ok := eng.modTimes[path]
		assert.True(t, ok, "missing mod-time entry for %s", path)
	}

	// Zero-symbol files stay out of the index but keep their mod-time
	// entry (so they are not re-parsed every pass) and remain in the
	// indexed-files set
	emptyPath := filepath.Join(root, "empty.ts")
	_, inIndex := eng.index[emptyPath]
	assert.False(t, inIndex)
	_, inModTimes := eng.modTimes[emptyPath]
	assert.True(t, inModTimes)
	_, inFiles := eng.indexedFiles[emptyPath]
	assert.True(t, inFiles)

	// Every observed file has a mod-time entry after a completed pass, so
	// the deletion sweep (which iterates mod-times) can reach all of them
	for path := range eng.indexedFiles {
		_, ok := eng.modTimes[path]
		assert.True(t, ok, "observed file %s is unreachable by the sweep", path)
	}
}

func TestBuildIndex_ContextCancellation(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.BuildIndex(ctx, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildIndex_RetriesAfterCancelledBuild(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := eng.BuildIndex(ctx, false)
	require.ErrorIs(t, err, context.Canceled)

	// An aborted pass must not mark its unparsed files as up to date
	assert.Empty(t, eng.modTimes, "cancelled builds commit no mod-times")

	stats, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.FilesParsed, "every file queued by the aborted pass is parsed")
	assert.Contains(t, symbolNames(eng), "getFileContent")
}

func TestClearCache(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	_, err := eng.BuildIndex(context.Background(), false)
	require.NoError(t, err)
	require.Positive(t, eng.Stats().TotalSymbols)

	eng.ClearCache()

	stats := eng.Stats()
	assert.Zero(t, stats.TotalFiles)
	assert.Zero(t, stats.TotalSymbols)
	assert.Zero(t, stats.CacheAge)
	assert.Zero(t, stats.FuzzyCorpusSize)
}

func TestFindDefinition(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	sym, err := eng.FindDefinition(context.Background(), "getFileContent", "")
	require.NoError(t, err)
	require.NotNil(t, sym)
	assert.Equal(t, types.KindFunction, sym.Type)
	assert.Equal(t, "a.ts", sym.FilePath)
	assert.Equal(t, 1, sym.Line)
}

func TestFindDefinition_ContextFileFirst(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.ts"), []byte("function dup() {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.ts"), []byte("function dup() {}\n"), 0644))

	eng := newTestEngine(t, root)

	sym, err := eng.FindDefinition(context.Background(), "dup", "b.ts")
	require.NoError(t, err)
	require.NotNil(t, sym)
	assert.Equal(t, "b.ts", sym.FilePath)
}

func TestFindDefinition_NotFound(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	sym, err := eng.FindDefinition(context.Background(), "doesNotExist", "")
	require.NoError(t, err, "a missing definition is a normal outcome")
	assert.Nil(t, sym)
}

func TestFileOutline_UnindexedFile(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	// Outline must work for excluded files without building the index
	symbols, err := eng.FileOutline("node_modules/dep/index.js")
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "hidden", symbols[0].Name)
}

func TestFileOutline_Errors(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	_, err := eng.FileOutline("missing.ts")
	assert.ErrorContains(t, err, "missing.ts")

	_, err = eng.FileOutline("README.md")
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestReadFile_CachesByModTime(t *testing.T) {
	root := newFixtureTree(t)
	eng := newTestEngine(t, root)

	path := filepath.Join(root, "a.ts")
	first, err := eng.readFile(path)
	require.NoError(t, err)

	// Same mod time: the cached content is reused even after a write
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("function other() {}\n"), 0644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	again, err := eng.readFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// A newer mod time invalidates the entry
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	fresh, err := eng.readFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, fresh)
}

func symbolNames(eng *Engine) []string {
	var names []string
	for _, sym := range eng.Symbols() {
		names = append(names, sym.Name)
	}
	return names
}
