package textsearch

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/tbrandt/codescout-mcp/internal/ignore"
	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// externalGrepStrategy shells out to a line-search utility: ripgrep when
// installed, plain grep otherwise
type externalGrepStrategy struct {
	root   string
	runner Runner
}

func (e *externalGrepStrategy) name() string { return "external grep" }

func (e *externalGrepStrategy) available(ctx context.Context) bool {
	return lookPath("rg") || lookPath("grep")
}

func (e *externalGrepStrategy) search(ctx context.Context, pattern string, globs []string, isRegex bool, max int) ([]types.TextMatch, error) {
	if lookPath("rg") {
		return e.ripgrep(ctx, pattern, globs, isRegex, max)
	}
	return e.grep(ctx, pattern, globs, isRegex, max)
}

func (e *externalGrepStrategy) ripgrep(ctx context.Context, pattern string, globs []string, isRegex bool, max int) ([]types.TextMatch, error) {
	args := []string{"-i", "--line-number", "--column", "--no-heading", "--color", "never"}
	if !isRegex {
		args = append(args, "--fixed-strings")
	}
	for _, glob := range globs {
		args = append(args, "-g", glob)
	}
	for dir := range deniedDirGlobs() {
		args = append(args, "-g", "!"+dir)
	}
	args = append(args, "-e", pattern, ".")

	out, err := e.runner.Run(ctx, e.root, "rg", args...)
	if err != nil {
		return nil, err
	}
	if out.ExitCode > 1 {
		return nil, fmt.Errorf("rg exited %d: %s", out.ExitCode, bytes.TrimSpace(out.Stderr))
	}
	if out.ExitCode == 1 {
		return []types.TextMatch{}, nil
	}

	return trimDotPrefix(parseGrepOutput(out.Stdout, true, max)), nil
}

func (e *externalGrepStrategy) grep(ctx context.Context, pattern string, globs []string, isRegex bool, max int) ([]types.TextMatch, error) {
	args := []string{"-r", "-n", "-i", "-I"}
	if isRegex {
		args = append(args, "-E")
	} else {
		args = append(args, "-F")
	}
	for _, glob := range globs {
		args = append(args, "--include="+glob)
	}
	for dir := range deniedDirGlobs() {
		args = append(args, "--exclude-dir="+dir)
	}
	args = append(args, "-e", pattern, ".")

	out, err := e.runner.Run(ctx, e.root, "grep", args...)
	if err != nil {
		return nil, err
	}
	if out.ExitCode > 1 {
		return nil, fmt.Errorf("grep exited %d: %s", out.ExitCode, bytes.TrimSpace(out.Stderr))
	}
	if out.ExitCode == 1 {
		return []types.TextMatch{}, nil
	}

	matches := trimDotPrefix(parseGrepOutput(out.Stdout, false, max))

	// grep reports no column; locate the first case-insensitive occurrence
	lowered := strings.ToLower(pattern)
	for i := range matches {
		if !isRegex {
			if idx := strings.Index(strings.ToLower(matches[i].Content), lowered); idx >= 0 {
				matches[i].Column = idx + 1
			}
		}
	}
	return matches, nil
}

// deniedDirGlobs returns the built-in directory deny list used to scope
// external tools to the same tree the indexer sees
func deniedDirGlobs() map[string]struct{} {
	return ignore.DeniedDirs()
}

// trimDotPrefix strips the leading "./" both tools emit when searching "."
func trimDotPrefix(matches []types.TextMatch) []types.TextMatch {
	for i := range matches {
		matches[i].FilePath = strings.TrimPrefix(matches[i].FilePath, "./")
	}
	return matches
}
