// Package resolved provides the name-resolved IR consumed by type inference.
//
// Resolved IR sits between the AST and the typed functions of package infer.
// Identifiers are replaced by local slots, parentheses are gone and declared
// type names are looked up. Nothing here is typed yet except what the source
// states explicitly.
package resolved

// FuncID identifies a function within a resolved module.
type FuncID uint32

// LocalID identifies a parameter slot within a function.
type LocalID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoFuncID  FuncID  = 0
	NoLocalID LocalID = 0
)

func (id FuncID) IsValid() bool  { return id != NoFuncID }
func (id LocalID) IsValid() bool { return id != NoLocalID }
