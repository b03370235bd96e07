// Package ast defines the NL syntax tree.
//
// A statement exclusively owns its whole subtree; there are no back-edges
// and no sharing. Nodes refer to files and identifier entries by id only,
// never by pointer, so the tree can outlive any single analysis pass.
// Every expression carries the three annotations filled in by semantic
// analysis: constness, resolved type, and (for integers and unary nodes)
// a cached compile-time value.
package ast
