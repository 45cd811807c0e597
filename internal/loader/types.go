package loader

import (
	"go/ast"
	"go/token"
)

// Service finds and parses the Go files to reorganize
type Service struct {
	parseVendor    bool
	excludes       map[string]struct{}
	parseExtension string
	skipGenerated  bool
	debug          Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// LoadResult contains the parsed files keyed by path
type LoadResult struct {
	Files map[string]*AstFileInfo
}

// AstFileInfo contains a parsed file and the source it was parsed from
type AstFileInfo struct {
	File        *ast.File
	Path        string
	PackagePath string
	FileSet     *token.FileSet
	Source      []byte
}

// Option is a functional option for configuring Service
type Option func(*Service)

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
