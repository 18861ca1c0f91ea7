// Package codedb is the source provider of the frontend: it serves file
// contents together with revision numbers and pins what a transaction has
// seen so one compilation pass observes a consistent snapshot.
//
// Revisions are global to one DB and grow monotonically. A path gets a new
// revision whenever the digest of its normalized content changes; rewriting
// a file with identical bytes keeps its revision.
package codedb
