package loader

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
)

// parseGoFile parses a Go source file, keeping comments since they move with declarations
func parseGoFile(fileSet *token.FileSet, path string, src []byte) (*ast.File, error) {
	return goparser.ParseFile(fileSet, path, src, goparser.ParseComments)
}
