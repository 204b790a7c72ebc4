// Package error provides structured error handling for khwarizmi.
//
// Package: error
// Title: khwarizmi Error Handling
// Description: Errors carry a Code, a Severity, details and a stack trace. The
//              equation pipeline reports every failure kind through a dedicated
//              code so that front-ends can pick exit codes, HTTP statuses and
//              gRPC statuses without string matching.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Usage:
//
//	err := mdwerror.New("no equals sign in equation").
//		WithCode(mdwerror.CodeNoEqualsSign).
//		WithDetail("tokens", 4)
//
//	if mdwerror.HasCode(err, mdwerror.CodeNoEqualsSign) {
//		// report missing "="
//	}
package error
