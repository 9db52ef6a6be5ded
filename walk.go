package cgx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/fork-tongue/ruff-cgx/internal/diagnostics"
)

// FileResult is the outcome of processing a single file in a batch.
type FileResult struct {
	Path        string
	Changed     bool
	Diagnostics []diagnostics.Diagnostic
	Err         error
}

// CollectFiles expands the given paths into the list of CGX files to
// process: files are taken as-is, directories are searched recursively for
// the CGX extension. Order is deterministic.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("no such path: %s", path)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(path), "**/*"+Extension, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(filepath.Join(path, filepath.FromSlash(m)))
		}
	}
	return files, nil
}

// FormatPaths formats every CGX file under the given paths. Files are
// processed independently; one file's failure never aborts its siblings.
// jobs bounds cross-file parallelism (each file's pipeline is isolated);
// values below one mean sequential.
func (t *Tool) FormatPaths(ctx context.Context, paths []string, check bool, jobs int) ([]FileResult, error) {
	files, err := CollectFiles(paths)
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, len(files))
	t.each(ctx, files, jobs, func(ctx context.Context, i int, path string) {
		changed, err := t.FormatFile(ctx, path, check)
		results[i] = FileResult{Path: path, Changed: changed, Err: err}
	})
	return results, nil
}

// CheckPaths lints every CGX file under the given paths. With fix set,
// safe autofixes are written back.
func (t *Tool) CheckPaths(ctx context.Context, paths []string, fix bool, jobs int) ([]FileResult, error) {
	files, err := CollectFiles(paths)
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, len(files))
	t.each(ctx, files, jobs, func(ctx context.Context, i int, path string) {
		diags, changed, err := t.LintFile(ctx, path, fix)
		results[i] = FileResult{Path: path, Changed: changed, Diagnostics: diags, Err: err}
	})
	return results, nil
}

func (t *Tool) each(ctx context.Context, files []string, jobs int, fn func(ctx context.Context, i int, path string)) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			fn(ctx, i, path)
			return nil
		})
	}
	// worker funcs never return errors; per-file failures land in results
	_ = g.Wait()
}
