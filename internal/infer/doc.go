// Package infer assigns types to resolved functions.
//
// Inference runs in three steps over one UnifyTable:
//
//	AnnotateBlock  every node gets an InferType, children before parents
//	Constraints    ordered equalities between those types
//	Solve          union-find unification, then finalization
//
// CheckFunction ties the steps together for a whole function and validates
// operators and literal ranges on the solved types.
package infer
