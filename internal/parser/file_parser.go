package parser

import (
	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/source"
)

// FileParser parses file contents into modules, registering every content
// version in Files so spans of older modules stay resolvable.
type FileParser struct {
	Files *source.FileSet
}

func NewFileParser(files *source.FileSet) *FileParser {
	return &FileParser{Files: files}
}

// Register adds a new version of path without parsing it.
func (fp *FileParser) Register(path string, content []byte) source.FileID {
	return fp.Files.Add(path, content, 0)
}

// Parse registers content as a new version of path and parses it.
// Lexer diagnostics are returned even when parsing fails.
func (fp *FileParser) Parse(path string, content []byte) (*ast.Module, []diag.Diagnostic, error) {
	id := fp.Register(path, content)
	lexDiags := diag.NewBag(0)
	mod, err := ParseFile(fp.Files.Get(id), Options{Reporter: lexDiags})
	return mod, lexDiags.Items(), err
}
