package driver

import (
	"argon/internal/diag"
	"argon/internal/lexer"
	"argon/internal/source"
	"argon/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path without parsing it. Lexical problems end up in Bag.
func (d *Driver) Tokenize(path string) (*TokenizeResult, error) {
	file, err := d.load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(d.opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	// Токенизация: собираем все токены до EOF
	tokens := lx.All()

	bag.Sort()
	return &TokenizeResult{
		FileSet: d.files,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// load reads path through the source provider and registers the content.
func (d *Driver) load(path string) (*source.File, error) {
	abs, err := source.AbsolutePath(path)
	if err != nil {
		return nil, err
	}
	txn := d.db.Begin()
	defer d.db.End(txn)

	f, err := d.db.Fetch(abs, txn)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, &FileNotFoundError{Path: abs}
	}
	id := d.files.Add(abs, f.Content, f.Flags)
	return d.files.Get(id), nil
}

// FileNotFoundError is returned by Tokenize and Parse for a missing path.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return "file not found: " + e.Path
}
