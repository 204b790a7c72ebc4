// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and metadata.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-19 v0.2.0: errors.As based lookups, algebra codes

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
	if !strings.Contains(err.StackTrace()[0].Function, "TestNew") {
		t.Errorf("first frame = %s, want caller of New", err.StackTrace()[0].Function)
	}
}

func TestNewf(t *testing.T) {
	err := Newf("token %q at %d", "+", 3)
	if err.Error() != `token "+" at 3` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap coded error keeps code",
			err:      New("no equals sign").WithCode(CodeNoEqualsSign),
			message:  "solve failed",
			wantMsg:  "solve failed: no equals sign",
			wantCode: CodeNoEqualsSign,
		},
		{
			name:     "wrap fmt-wrapped coded error keeps code",
			err:      fmt.Errorf("outer: %w", New("bad token").WithCode(CodeParseFailure)),
			message:  "solve failed",
			wantMsg:  "solve failed: outer: bad token",
			wantCode: CodeParseFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is should find the wrapped cause")
			}
		})
	}
}

func TestWithCode_DerivesSeverity(t *testing.T) {
	err := New("x").WithCode(CodeParseFailure)
	if err.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want low", err.Severity())
	}

	err = New("x").WithSeverity(SeverityCritical).WithCode(CodeParseFailure)
	if err.Severity() != SeverityCritical {
		t.Errorf("explicit severity overwritten: %v", err.Severity())
	}
}

func TestDetails_AreCopied(t *testing.T) {
	err := New("x").WithDetail("input", "2x=4").WithOperation("solver.Solve")

	details := err.Details()
	details["input"] = "changed"

	if err.Details()["input"] != "2x=4" {
		t.Error("Details() must return a copy")
	}
	if err.Operation() != "solver.Solve" {
		t.Errorf("Operation() = %q", err.Operation())
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	base := New("no path").WithCode(CodeNoVariablePath)
	wrapped := fmt.Errorf("step 2: %w", base)

	if !HasCode(wrapped, CodeNoVariablePath) {
		t.Error("HasCode() should see through fmt wrapping")
	}
	if HasCode(errors.New("plain"), CodeNoVariablePath) {
		t.Error("HasCode() on plain error should be false")
	}
	if GetCode(wrapped) != CodeNoVariablePath {
		t.Errorf("GetCode() = %v", GetCode(wrapped))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() on plain error should be UNKNOWN")
	}
	if GetSeverity(wrapped) != SeverityLow {
		t.Errorf("GetSeverity() = %v", GetSeverity(wrapped))
	}
}

func TestString(t *testing.T) {
	err := New("division by zero").
		WithCode(CodeDivisionByZero).
		WithDetail("b", 1).
		WithDetail("a", 2).
		WithOperation("algebra.Solve")

	s := err.String()
	for _, want := range []string{
		"Error: division by zero",
		"Code: DIVISION_BY_ZERO",
		"Severity: low",
		"Operation: algebra.Solve",
		"Details: {a=2, b=1}",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("root"), "outer").WithCode(CodeParseFailure).WithDetail("token", "*")

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("Marshal() error = %v", marshalErr)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded["code"] != "PARSE_FAILURE" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["cause"] != "root" {
		t.Errorf("cause = %v", decoded["cause"])
	}
	if decoded["severity"] != "low" {
		t.Errorf("severity = %v", decoded["severity"])
	}
}
