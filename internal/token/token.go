// Package token carries the minimal source-position information the
// semantic analyzer needs to attach to diagnostics. The tokenizer itself
// is an external collaborator: it produces the AST this module consumes,
// stamping each node's Token field on the way.
package token

import "fmt"

// Token is a source-position marker copied onto AST nodes by the parser.
// Lexeme is kept only for diagnostics ("... near 'foo'"); the analyzer
// never re-lexes or compares token kinds.
type Token struct {
	Lexeme string
	File   string
	Line   int
	Column int
}

func (t Token) String() string {
	if t.File == "" {
		return fmt.Sprintf("%d:%d", t.Line, t.Column)
	}
	return fmt.Sprintf("%s:%d:%d", t.File, t.Line, t.Column)
}

// Zero reports whether t is the unset sentinel (e.g. for synthetic nodes).
func (t Token) Zero() bool {
	return t.Line == 0 && t.Column == 0 && t.File == ""
}
