package driver

import (
	"errors"

	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/parser"
	"argon/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Module  *ast.Module // nil on a syntax error
	Bag     *diag.Bag
}

// Parse parses path bypassing the Ast Cache. A syntax error is reported in
// Bag rather than returned.
func (d *Driver) Parse(path string) (*ParseResult, error) {
	file, err := d.load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(d.opts.MaxDiagnostics)
	mod, err := parser.ParseFile(file, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	var perr *parser.ParseError
	switch {
	case errors.As(err, &perr):
		bag.Add(perr.Diagnostic())
	case err != nil:
		return nil, err
	}

	bag.Dedup()
	bag.Sort()
	return &ParseResult{
		FileSet: d.files,
		File:    file,
		Module:  mod,
		Bag:     bag,
	}, nil
}
