package reorganize

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/griffnb/core-maid/internal/loader"
	"github.com/griffnb/core-maid/internal/membertype"
)

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// Result is the outcome for one file. Err is set when the file could not be
// reorganized, in which case it is left alone.
type Result struct {
	Path    string
	Changed bool
	Output  []byte
	Err     error
}

// Service reorganizes many files with one set of member type settings.
type Service struct {
	settings *membertype.Settings
	opts     Options
	debug    Debugger
}

// NewService creates a Service. Settings are only read while Run is in
// progress, so they must not be mutated concurrently with it.
func NewService(settings *membertype.Settings, opts Options, debug Debugger) *Service {
	if settings == nil {
		settings = membertype.DefaultSettings()
	}
	return &Service{settings: settings, opts: opts, debug: debug}
}

// Run reorganizes files concurrently, bounded by the number of CPUs. Results
// are sorted by path so output does not depend on scheduling. A file that
// cannot be reorganized gets a Result with Err and does not stop the others.
func (s *Service) Run(ctx context.Context, files map[string]*loader.AstFileInfo) ([]Result, error) {
	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(files))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for path, info := range files {
		if info == nil || info.File == nil {
			continue
		}

		path, info := path, info

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := Source(info.FileSet, info.File, info.Source, s.settings, s.opts)
			if err != nil {
				if s.debug != nil {
					s.debug.Printf("skipping %s: %v", path, err)
				}
				mu.Lock()
				results = append(results, Result{Path: path, Err: fmt.Errorf("failed to reorganize %s: %w", path, err)})
				mu.Unlock()
				return nil
			}

			changed := !bytes.Equal(out, info.Source)
			if changed && s.debug != nil {
				s.debug.Printf("reorganized %s", path)
			}

			mu.Lock()
			results = append(results, Result{Path: path, Changed: changed, Output: out})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// Changed filters results down to the files whose content differs.
func Changed(results []Result) []Result {
	var changed []Result
	for _, r := range results {
		if r.Changed {
			changed = append(changed, r)
		}
	}
	return changed
}

// Failed filters results down to the files that could not be reorganized.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Write rewrites every changed file in place, keeping its permissions.
func Write(results []Result) error {
	for _, r := range Changed(results) {
		info, err := os.Stat(r.Path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(r.Path, r.Output, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}
