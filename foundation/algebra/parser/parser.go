// File: parser.go
// Title: Expression Parser
// Description: Builds an expression tree from the tokens of one equation side.
//              The parser re-scans each token sub-sequence for the operator
//              symbols in the fixed order + - * / and splits at the first
//              occurrence of the first symbol present, so additive operators
//              always end up nearest the root.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial re-scanning parser

package parser

import (
	"strconv"
	"unicode/utf8"

	"github.com/msto63/khwarizmi/foundation/algebra/ast"
	"github.com/msto63/khwarizmi/foundation/algebra/lexer"
	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

// scanOrder is the order in which operator symbols are searched. The first
// symbol found becomes the root of the (sub)tree.
var scanOrder = []string{lexer.OpAdd, lexer.OpSubtract, lexer.OpMultiply, lexer.OpDivide}

// Parse converts tokens into an expression tree.
func Parse(tokens lexer.Tokens) (ast.Expr, error) {
	switch len(tokens) {
	case 0:
		return nil, parseError("empty token sequence", tokens)
	case 1:
		return parseLeaf(tokens[0])
	}

	for _, symbol := range scanOrder {
		i := indexOf(tokens, symbol)
		if i < 0 {
			continue
		}

		kind, _ := ast.KindFromSymbol(symbol)

		left, err := Parse(tokens[:i])
		if err != nil {
			return nil, err
		}
		right, err := Parse(tokens[i+1:])
		if err != nil {
			return nil, err
		}

		return ast.NewBinary(kind, left, right), nil
	}

	return nil, parseError("no operator joins the tokens", tokens)
}

// ParseValues is a convenience wrapper that classifies raw token texts first
func ParseValues(values ...string) (ast.Expr, error) {
	return Parse(lexer.FromValues(values...))
}

func parseLeaf(token lexer.Token) (ast.Expr, error) {
	if value, err := strconv.ParseFloat(token.Value, 64); err == nil {
		return ast.Constant{Value: value}, nil
	}

	if token.Type == lexer.TokenOperator || token.Type == lexer.TokenEquals {
		return nil, parseError("operator without operands", lexer.Tokens{token})
	}
	if utf8.RuneCountInString(token.Value) != 1 {
		return nil, parseError("invalid variable name", lexer.Tokens{token})
	}

	return ast.Variable{Name: token.Value}, nil
}

func indexOf(tokens lexer.Tokens, symbol string) int {
	for i, t := range tokens {
		if t.Value == symbol {
			return i
		}
	}
	return -1
}

func parseError(message string, tokens lexer.Tokens) error {
	return mdwerror.New(message).
		WithCode(mdwerror.CodeParseFailure).
		WithOperation("parser.Parse").
		WithDetail("tokens", tokens.String())
}
