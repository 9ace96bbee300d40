// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "fmt"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenParenOpen
	TokenParenClose
	TokenLogicOp
	TokenProximityOp
	TokenField
	TokenTerm
)

// String returns the kind name used in diagnostics.
func (k TokenKind) String() string {
	switch k {
	case TokenParenOpen:
		return "PAREN_OPEN"
	case TokenParenClose:
		return "PAREN_CLOSE"
	case TokenLogicOp:
		return "LOGIC_OP"
	case TokenProximityOp:
		return "PROXIMITY_OP"
	case TokenField:
		return "FIELD"
	case TokenTerm:
		return "TERM"
	default:
		return "UNKNOWN"
	}
}

// Span is a half-open byte range [Start, End) into the original query string.
// Parser-inserted tokens carry the artificial span (-1, -1) and are never
// rendered back literally.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Artificial is the span of tokens and messages that have no position in the
// user's input.
var Artificial = Span{Start: -1, End: -1}

// IsArtificial reports whether the span points outside the user's input.
func (s Span) IsArtificial() bool {
	return s.Start < 0 || s.End < 0
}

func (s Span) String() string {
	return fmt.Sprintf("(%d, %d)", s.Start, s.End)
}

// Token is one lexed unit of a query string. Tokens are immutable once
// produced; linters that correct a token (e.g. operator capitalization)
// replace it in the slice.
type Token struct {
	Value string
	Kind  TokenKind
	Pos   Span
}

// IsOperator reports whether the token is a logic or proximity operator.
func (t Token) IsOperator() bool {
	return t.Kind == TokenLogicOp || t.Kind == TokenProximityOp
}
