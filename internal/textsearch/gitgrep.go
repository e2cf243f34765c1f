package textsearch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// gitGrepStrategy shells out to git's built-in content grep. Only usable
// when the root is a git repository and the git CLI is installed.
type gitGrepStrategy struct {
	root   string
	runner Runner
}

func (g *gitGrepStrategy) name() string { return "git grep" }

func (g *gitGrepStrategy) available(ctx context.Context) bool {
	if !lookPath("git") {
		return false
	}
	_, err := os.Stat(filepath.Join(g.root, ".git"))
	return err == nil
}

func (g *gitGrepStrategy) search(ctx context.Context, pattern string, globs []string, isRegex bool, max int) ([]types.TextMatch, error) {
	args := []string{"grep", "-I", "-i", "-n", "--column", "--untracked"}
	if isRegex {
		args = append(args, "-E")
	} else {
		args = append(args, "--fixed-strings")
	}
	args = append(args, "-e", pattern)
	if len(globs) > 0 {
		args = append(args, "--")
		args = append(args, globs...)
	}

	out, err := g.runner.Run(ctx, g.root, "git", args...)
	if err != nil {
		return nil, err
	}
	// Exit code 1 means no matches, anything above is a real failure
	if out.ExitCode > 1 {
		return nil, fmt.Errorf("git grep exited %d: %s", out.ExitCode, bytes.TrimSpace(out.Stderr))
	}
	if out.ExitCode == 1 {
		return []types.TextMatch{}, nil
	}

	return parseGrepOutput(out.Stdout, true, max), nil
}

// parseGrepOutput parses line-oriented path:line[:col]:content matches
func parseGrepOutput(stdout []byte, hasColumn bool, max int) []types.TextMatch {
	var matches []types.TextMatch

	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(matches) >= max {
			break
		}

		fields := 3
		if hasColumn {
			fields = 4
		}
		parts := strings.SplitN(scanner.Text(), ":", fields)
		if len(parts) < fields {
			continue
		}

		line, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}

		column := 1
		content := parts[2]
		if hasColumn {
			col, colErr := strconv.Atoi(parts[2])
			if colErr != nil {
				continue
			}
			column = col
			content = parts[3]
		}

		matches = append(matches, types.TextMatch{
			FilePath: filepath.ToSlash(parts[0]),
			Line:     line,
			Column:   column,
			Content:  content,
		})
	}

	return matches
}
