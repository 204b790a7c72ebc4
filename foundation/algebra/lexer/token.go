// File: token.go
// Title: Equation Token Definitions
// Description: Defines the lexical tokens of a linear equation: numbers, single
//              letter variables, the four arithmetic operators and the equals sign.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial token definitions

package lexer

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenNumber   TokenType = iota // 2, 10, 1.5
	TokenVariable                  // x
	TokenOperator                  // + - * /
	TokenEquals                    // =
)

// Operator symbols
const (
	OpAdd      = "+"
	OpSubtract = "-"
	OpMultiply = "*"
	OpDivide   = "/"
	Equals     = "="
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenNumber:
		return "NUMBER"
	case TokenVariable:
		return "VARIABLE"
	case TokenOperator:
		return "OPERATOR"
	case TokenEquals:
		return "EQUALS"
	default:
		return "UNKNOWN"
	}
}

// Token is a lexical unit of an equation. Value is authoritative; Type is a
// convenience for callers that want to branch without re-inspecting the text.
type Token struct {
	Type     TokenType
	Value    string
	Position int // byte offset in the input, -1 for inserted tokens
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

// IsImplicit reports whether the token was inserted by the tokenizer
func (t Token) IsImplicit() bool {
	return t.Position < 0
}

// Tokens is an ordered token sequence
type Tokens []Token

// Values returns the token texts in order
func (ts Tokens) Values() []string {
	values := make([]string, len(ts))
	for i, t := range ts {
		values[i] = t.Value
	}
	return values
}

// String joins the token texts with single spaces
func (ts Tokens) String() string {
	return strings.Join(ts.Values(), " ")
}

// FromValues builds a token sequence from raw texts, classifying each text
// the same way the tokenizer does. Positions are unknown and set to -1.
func FromValues(values ...string) Tokens {
	tokens := make(Tokens, len(values))
	for i, v := range values {
		tokens[i] = Token{Type: classify(v), Value: v, Position: -1}
	}
	return tokens
}

func classify(value string) TokenType {
	switch value {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return TokenOperator
	case Equals:
		return TokenEquals
	}
	if isNumeric(value) {
		return TokenNumber
	}
	return TokenVariable
}
