package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_ExactMatchRanksFirst(t *testing.T) {
	ix := NewIndex([]string{"getFileContent", "getFile", "getContent", "setFileContent"})

	names, err := ix.Find("getFile")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "getFile", names[0])
}

func TestFind_AcronymMatch(t *testing.T) {
	ix := NewIndex([]string{"getFileContent", "group", "garbageFetchCounter", "config"})

	names, err := ix.Find("gfc")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	top3 := names
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	assert.Contains(t, top3, "getFileContent")
}

func TestFind_SnakeCaseAcronym(t *testing.T) {
	ix := NewIndex([]string{"build_index_batch", "unrelated"})

	names, err := ix.Find("bib")
	require.NoError(t, err)
	assert.Contains(t, names, "build_index_batch")
}

func TestFind_CaseInsensitive(t *testing.T) {
	ix := NewIndex([]string{"HTTPHandler", "httpClient"})

	names, err := ix.Find("httphandler")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "HTTPHandler", names[0])
}

func TestFind_NonSubsequenceExcluded(t *testing.T) {
	ix := NewIndex([]string{"alpha", "beta"})

	names, err := ix.Find("xyz")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFind_EmptyQuery(t *testing.T) {
	ix := NewIndex([]string{"alpha"})

	names, err := ix.Find("")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSize(t *testing.T) {
	ix := NewIndex([]string{"a", "b", "c"})
	assert.Equal(t, 3, ix.Size())
}

func TestAcronymOf(t *testing.T) {
	cases := map[string]string{
		"getFileContent":    "gfc",
		"build_index_batch": "bib",
		"FileReader":        "fr",
		"main":              "m",
		"kebab-case-name":   "kcn",
	}
	for name, want := range cases {
		assert.Equal(t, want, acronymOf(name), "acronym of %q", name)
	}
}

func TestAlgorithmTierByCorpusSize(t *testing.T) {
	small := NewIndex([]string{"one", "two"})
	assert.NotEqual(t, small.algo, NewIndex(manyNames(largeCorpusThreshold+1)).algo,
		"large corpora should select the throughput-oriented algorithm")
}

func manyNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "sym" + string(rune('a'+i%26)) + string(rune('a'+(i/26)%26)) + string(rune('a'+(i/676)%26)) + string(rune('a'+(i/17576)%26))
	}
	return names
}
