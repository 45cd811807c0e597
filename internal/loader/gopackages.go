package loader

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadWithGoPackages resolves package patterns such as ./... with go/packages
// and parses every Go file they contain, test files included.
func (s *Service) LoadWithGoPackages(dir string, patterns []string) (*LoadResult, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	// go list reports resolved paths
	if resolved, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = resolved
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles,
		Dir:   absDir,
		Tests: true,
	}, patterns...)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, e
		}
	}

	result := &LoadResult{
		Files: make(map[string]*AstFileInfo),
	}

	for _, pkg := range pkgs {
		for _, file := range pkg.GoFiles {
			if s.skipByDirectory(absDir, filepath.Dir(file)) || s.shouldSkipFile(file) {
				continue
			}

			// test variants list the same files again, parseFile ignores repeats
			if err := s.parseFile(pkg.PkgPath, file, nil, result); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// skipByDirectory applies the walk rules to every directory between root and dir.
// Files outside root, such as generated test mains, are always skipped.
func (s *Service) skipByDirectory(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}

	for d := dir; d != root; d = filepath.Dir(d) {
		info, err := os.Stat(d)
		if err != nil {
			return true
		}
		if s.shouldSkipDir(d, info) != nil {
			return true
		}
	}
	return false
}
