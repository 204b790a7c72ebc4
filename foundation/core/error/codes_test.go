// File: codes_test.go
// Title: Error Code Tests
// Description: Tests for error code validation, categorization, and HTTP status mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive code tests
// - 2026-10-19 v0.2.0: Algebra codes

package error

import (
	"testing"
)

func TestCodeIsValid(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want bool
	}{
		{"known code", CodeDatabaseError, true},
		{"algebra code", CodeNoEqualsSign, true},
		{"unknown code", Code("INVALID_CODE"), false},
		{"empty code", Code(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.IsValid(); got != tt.want {
				t.Errorf("Code.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeNoEqualsSign, "algebra"},
		{CodeParseFailure, "algebra"},
		{CodeNoVariablePath, "algebra"},
		{CodeMultipleVariables, "algebra"},
		{CodeDivisionByZero, "algebra"},
		{CodeStepLimitExceeded, "algebra"},
		{CodeDatabaseError, "database"},
		{CodeServiceInitialization, "service"},
		{CodeInvalidConfig, "configuration"},
		{CodeUnknown, "generic"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %v, want %v", got, tt.want)
			}
			if got := tt.code.IsAlgebra(); got != (tt.want == "algebra") {
				t.Errorf("IsAlgebra() = %v", got)
			}
		})
	}
}

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNoEqualsSign, 400},
		{CodeParseFailure, 400},
		{CodeDivisionByZero, 400},
		{CodeStepLimitExceeded, 422},
		{CodeNotFound, 404},
		{CodeDatabaseError, 503},
		{CodeInternal, 500},
		{CodeUnknown, 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}
