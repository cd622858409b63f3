// Package ast holds the arena-allocated expression tree produced by the parser.
//
// Nodes live in per-kind arenas inside Exprs and are addressed by ExprID.
// Constructors compute each node's span from its children (and delimiters)
// and set HasError to the OR of the children's flags, so "may this subtree
// be evaluated" is answered by reading one field of the root.
package ast
