// File: lexer.go
// Title: Equation Tokenizer and Splitter
// Description: Converts a raw equation string into tokens and splits the token
//              sequence at the equals sign. Unrecognized characters such as
//              whitespace are skipped; a number directly followed by a variable
//              gets an implicit multiplication ("2x" becomes "2 * x").
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tokenizer and splitter

package lexer

import (
	"regexp"
	"strconv"
	"unicode"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

// tokenPattern matches, left to right, digit runs with an optional decimal
// fraction, one of + - * / =, or a single ASCII letter.
var tokenPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?|[-+*/=]|[A-Za-z]`)

// Tokenize scans input and returns its tokens. It never fails; input without
// recognizable tokens yields an empty sequence.
func Tokenize(input string) Tokens {
	matches := tokenPattern.FindAllStringIndex(input, -1)

	tokens := make(Tokens, 0, len(matches)+len(matches)/2)
	for _, m := range matches {
		value := input[m[0]:m[1]]
		current := Token{Type: classify(value), Value: value, Position: m[0]}

		if n := len(tokens); n > 0 && needsImplicitMultiply(tokens[n-1], current) {
			tokens = append(tokens, Token{Type: TokenOperator, Value: OpMultiply, Position: -1})
		}
		tokens = append(tokens, current)
	}

	return tokens
}

// needsImplicitMultiply reports whether a "*" belongs between prev and next:
// prev is numeric and next is alphanumeric. Numbers separated by whitespace
// ("2 3") therefore multiply as well.
func needsImplicitMultiply(prev, next Token) bool {
	return isNumeric(prev.Value) && isAlphanumeric(next.Value)
}

// Split splits tokens at the first equals sign. The equals token itself is
// dropped; later equals tokens stay in the right-hand sequence.
func Split(tokens Tokens) (left, right Tokens, err error) {
	for i, t := range tokens {
		if t.Value == Equals {
			left = append(Tokens{}, tokens[:i]...)
			right = append(Tokens{}, tokens[i+1:]...)
			return left, right, nil
		}
	}

	return nil, nil, mdwerror.New("no equals sign in equation").
		WithCode(mdwerror.CodeNoEqualsSign).
		WithOperation("lexer.Split").
		WithDetail("tokens", tokens.String())
}

func isNumeric(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

func isAlphanumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
