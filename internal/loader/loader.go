package loader

import (
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// LoadSearchDirs loads Go files from the specified search directories
func (s *Service) LoadSearchDirs(dirs []string) (*LoadResult, error) {
	result := &LoadResult{
		Files: make(map[string]*AstFileInfo),
	}

	for _, searchDir := range dirs {
		absDir, err := filepath.Abs(searchDir)
		if err != nil {
			return nil, err
		}

		err = s.walkDirectory(absDir, result)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// walkDirectory walks a directory and parses Go files
func (s *Service) walkDirectory(searchDir string, result *LoadResult) error {
	return filepath.Walk(searchDir, func(path string, f os.FileInfo, wError error) error {
		if wError != nil {
			return fmt.Errorf("failed to access path %q, err: %v", path, wError)
		}

		// the search dir itself is never skipped, even if it is hidden
		if path != searchDir {
			if err := s.shouldSkipDir(path, f); err != nil {
				return err
			}
		}

		if f.IsDir() {
			return nil
		}

		if s.shouldSkipFile(path) {
			return nil
		}

		relPath, err := filepath.Rel(searchDir, path)
		if err != nil {
			return err
		}

		pkgPath := filepath.ToSlash(filepath.Dir(relPath))
		return s.parseFile(pkgPath, path, nil, result)
	})
}

// parseFile parses a single Go file. src is read from disk when nil.
func (s *Service) parseFile(packageDir, path string, src []byte, result *LoadResult) error {
	if _, ok := result.Files[path]; ok {
		return nil
	}

	if src == nil {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		src = b
	}

	fileSet := token.NewFileSet()
	astFile, err := parseGoFile(fileSet, path, src)
	if err != nil {
		return fmt.Errorf("failed to parse file %s, error:%+v", path, err)
	}

	if s.skipGenerated && ast.IsGenerated(astFile) {
		s.debug.Printf("skipping generated file %s", path)
		return nil
	}

	result.Files[path] = &AstFileInfo{
		File:        astFile,
		Path:        path,
		PackagePath: packageDir,
		FileSet:     fileSet,
		Source:      src,
	}
	return nil
}

// shouldSkipFile checks if a file should be skipped
func (s *Service) shouldSkipFile(path string) bool {
	return !strings.EqualFold(filepath.Ext(path), s.parseExtension)
}

// shouldSkipDir checks if a directory should be skipped
func (s *Service) shouldSkipDir(path string, f os.FileInfo) error {
	if !f.IsDir() {
		return nil
	}

	if !s.parseVendor && f.Name() == "vendor" {
		return filepath.SkipDir
	}
	if f.Name() == "testdata" {
		return filepath.SkipDir
	}
	if len(f.Name()) > 1 && (f.Name()[0] == '.' || f.Name()[0] == '_') {
		return filepath.SkipDir
	}

	if s.excludes != nil {
		if _, ok := s.excludes[path]; ok {
			s.debug.Printf("excluding %s", path)
			return filepath.SkipDir
		}
	}

	return nil
}
