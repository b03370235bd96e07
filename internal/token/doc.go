// Package token defines the lexical vocabulary of NL source text.
//
// Skippable kinds (whitespace, comments, documentation) are real tokens,
// not trivia: the lexer never drops bytes, so concatenating the Text of
// every token reproduces the input exactly. The parser skips them
// explicitly and attaches documentation blocks to the next statement.
package token
