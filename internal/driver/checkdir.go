package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DirResult pairs one file with its check outcome.
type DirResult struct {
	Path   string
	Result *CheckResult
	// Cached is true when the disk cache already knew this file was clean
	// and the check was skipped.
	Cached bool
	Err    error
}

// DirOptions configures a directory check.
type DirOptions struct {
	MaxDiagnostics int
	Jobs           int
	Cache          *DiskCache
	// Events receives progress notifications when non-nil. The channel is
	// closed when the walk finishes.
	Events chan<- Event
}

// ListFiles returns every *.nl file under dir, sorted.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".nl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir fans the per-file pipeline out over worker goroutines. Each
// file compiles independently (identifier scoping is single-file), so the
// only shared state is the result slice, indexed per file. Results come
// back in deterministic path order.
func CheckDir(ctx context.Context, files []string, opts DirOptions) ([]DirResult, error) {
	results := make([]DirResult, len(files))

	emit := func(ev Event) {
		if opts.Events != nil {
			opts.Events <- ev
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(Event{File: path, Stage: StageParse, Status: StatusWorking})

			if opts.Cache != nil {
				if payload, ok := opts.Cache.Lookup(path); ok && payload.OK {
					results[i] = DirResult{Path: path, Cached: true}
					emit(Event{File: path, Stage: StageCheck, Status: StatusDone})
					return nil
				}
			}

			res, err := Check(path, opts.MaxDiagnostics)
			results[i] = DirResult{Path: path, Result: res, Err: err}
			switch {
			case err != nil || !res.OK:
				emit(Event{File: path, Stage: StageCheck, Status: StatusError})
			default:
				emit(Event{File: path, Stage: StageCheck, Status: StatusDone})
			}
			if err == nil && opts.Cache != nil {
				_ = opts.Cache.Store(path, res)
			}
			return nil
		})
	}

	err := g.Wait()
	if opts.Events != nil {
		close(opts.Events)
	}
	return results, err
}
