package catalog

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker discovers candidate descriptor/resource files under a directory
// tree in parallel, the way a catalog ingestion run scans a collection
// root before parsing each file it finds.
type Walker struct {
	workers int
}

// NewWalker returns a Walker with twice as many workers as the host has
// CPUs.
func NewWalker() *Walker {
	return &Walker{workers: runtime.NumCPU() * 2}
}

// WalkResult is one discovered file, or an error encountered reaching it.
type WalkResult struct {
	Path  string
	Error error
}

// Walk scans root for files whose path matches pattern (a doublestar
// glob, e.g. "**/*.xml"), streaming results as they're found.
func (w *Walker) Walk(ctx context.Context, root, pattern string) (<-chan WalkResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, os.ErrInvalid
	}

	paths := make(chan string, 1000)
	results := make(chan WalkResult, 1000)

	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case p, ok := <-paths:
					if !ok {
						return
					}
					select {
					case <-ctx.Done():
						return
					case results <- WalkResult{Path: p}:
					}
				}
			}
		}()
	}

	go func() {
		defer close(paths)
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			matched, matchErr := doublestar.PathMatch(pattern, path)
			if matchErr != nil || !matched {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case paths <- path:
			}
			return nil
		})
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}
