// Package ast holds the syntax tree produced by the parser.
//
// Nodes form strict trees: every child is owned by exactly one parent.
// All node types are plain structs so a Module can be stored with msgpack
// and later re-attached to a new file version with Rebind.
package ast
