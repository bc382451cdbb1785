package mp3

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Extension is the file extension [Load] looks for in directories.
const Extension = ".mp3"

// Load opens the file at path, or every .mp3 file directly inside it when path is a directory.
// Files are returned in lexical path order.
func Load(ctx context.Context, path string, opts ...Option) ([]*File, error) {
	paths, err := Discover(path)
	if err != nil {
		return nil, err
	}
	return LoadAll(ctx, paths, opts...)
}

// Discover returns path when it names an .mp3 file, or the sorted .mp3 files in it when it names
// a directory.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err)
	}
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(path), Extension) {
			return nil, fmt.Errorf("%w: %s is not an %s file", ErrInvalidPath, path, Extension)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Extension) {
			continue
		}
		paths = append(paths, filepath.Join(path, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, path)
	}
	slices.Sort(paths)
	return paths, nil
}

// LoadAll opens paths concurrently, keeping their order. If any file fails to open, the files
// already opened are closed and the first error is returned.
func LoadAll(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	files := make([]*File, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Open(path, opts...)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		CloseAll(files)
		return nil, err
	}
	return files, nil
}

// CloseAll closes every non-nil file and returns the first error.
func CloseAll(files []*File) error {
	var first error
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
