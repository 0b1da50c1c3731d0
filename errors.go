// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"fmt"
	"net/http"
)

// DinstarError represents a failed gateway operation with its context
type DinstarError struct {
	// Operation name that failed (e.g. "send_sms")
	Operation string

	// HTTPCode is the HTTP status code, 0 if no response was received
	HTTPCode int

	// ErrorCode is the gateway status code decoded from the body, if any
	ErrorCode *int

	// Human-readable error message
	Message string

	// InternalMsg contains detailed error information for internal logging
	InternalMsg string

	// Number of retry attempts made
	Retries int

	// local is set when the call never reached the network
	local bool
}

// Error implements the error interface
func (e *DinstarError) Error() string {
	if e.Retries > 0 {
		return fmt.Sprintf("dinstar: %s failed: %s (retries: %d)", e.Operation, e.Message, e.Retries)
	}
	return fmt.Sprintf("dinstar: %s failed: %s", e.Operation, e.Message)
}

// DetailedError returns the full error message including internal details
//
// This should only be used in secure logging contexts where sensitive information
// disclosure is acceptable (e.g., server-side logs, debug output). The internal
// message may carry raw gateway output.
//
// Example:
//
//	_, err := client.QuerySMSInQueue(ctx)
//	var dErr *dinstar.DinstarError
//	if errors.As(err, &dErr) {
//	    log.Debug(dErr.DetailedError())
//	}
func (e *DinstarError) DetailedError() string {
	if e.InternalMsg == "" {
		return e.Error()
	}
	if e.Retries > 0 {
		return fmt.Sprintf("dinstar: %s failed: %s (internal: %s, retries: %d)",
			e.Operation, e.Message, e.InternalMsg, e.Retries)
	}
	return fmt.Sprintf("dinstar: %s failed: %s (internal: %s)",
		e.Operation, e.Message, e.InternalMsg)
}

// IsGatewayError reports whether the failure was reported by the gateway itself
// (the response decoded but carried an unexpected status code).
func (e *DinstarError) IsGatewayError() bool {
	return e.ErrorCode != nil
}

// IsLocal reports whether the operation failed before any network call was
// made (argument validation or request encoding).
func (e *DinstarError) IsLocal() bool {
	return e.local
}

// AuthRetryStatusCodes lists the HTTP status codes that trigger the single
// retry with a fresh connection.
//
// Dinstar gateways answer 401 or 403 when a digest session goes stale on the
// device side (nonce expired, session table full). Tearing down the TCP/TLS
// connection and authenticating again usually clears it. Any other status is
// returned to the caller as-is.
var AuthRetryStatusCodes = []int{
	http.StatusUnauthorized,
	http.StatusForbidden,
}

// isAuthFailure reports whether code is one of AuthRetryStatusCodes
func isAuthFailure(code int) bool {
	for _, c := range AuthRetryStatusCodes {
		if c == code {
			return true
		}
	}
	return false
}
