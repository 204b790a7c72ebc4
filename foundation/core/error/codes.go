// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error classification
//              across khwarizmi. Codes drive severity, HTTP status mapping and the
//              messages shown by the CLI and the service front-ends.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Algebra codes for the equation pipeline

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Storage
	CodeDatabaseError    Code = "DATABASE_ERROR"
	CodeConnectionFailed Code = "CONNECTION_FAILED"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeNetworkError          Code = "NETWORK_ERROR"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"

	// Equation pipeline
	CodeNoEqualsSign      Code = "NO_EQUALS_SIGN"
	CodeParseFailure      Code = "PARSE_FAILURE"
	CodeNoVariablePath    Code = "NO_VARIABLE_PATH"
	CodeMultipleVariables Code = "MULTIPLE_VARIABLES"
	CodeDivisionByZero    Code = "DIVISION_BY_ZERO"
	CodeStepLimitExceeded Code = "STEP_LIMIT_EXCEEDED"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeDatabaseError, CodeConnectionFailed,
		CodeServiceUnavailable, CodeNetworkError, CodeServiceInitialization,
		CodeNoEqualsSign, CodeParseFailure, CodeNoVariablePath,
		CodeMultipleVariables, CodeDivisionByZero, CodeStepLimitExceeded,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// IsAlgebra reports whether the code belongs to the equation pipeline
func (c Code) IsAlgebra() bool {
	return c.Category() == "algebra"
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeNoEqualsSign, CodeParseFailure, CodeNoVariablePath,
		CodeMultipleVariables, CodeDivisionByZero, CodeStepLimitExceeded:
		return "algebra"
	case CodeDatabaseError, CodeConnectionFailed:
		return "database"
	case CodeServiceUnavailable, CodeNetworkError, CodeServiceInitialization:
		return "service"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return 404
	case CodeInvalidInput, CodeNoEqualsSign, CodeParseFailure, CodeNoVariablePath,
		CodeMultipleVariables, CodeDivisionByZero:
		return 400
	case CodeStepLimitExceeded:
		return 422
	case CodeTimeout:
		return 408
	case CodeServiceUnavailable, CodeDatabaseError, CodeConnectionFailed:
		return 503
	default:
		return 500
	}
}
