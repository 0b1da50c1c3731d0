// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"errors"
	"fmt"
	"testing"
)

func intPtr(v int) *int { return &v }

// TestDinstarError_Error tests the Error() method of DinstarError
func TestDinstarError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      DinstarError
		expected string
	}{
		{
			name:     "without retries",
			err:      DinstarError{Operation: "send_sms", Message: "gateway error 500"},
			expected: "dinstar: send_sms failed: gateway error 500",
		},
		{
			name:     "with retries",
			err:      DinstarError{Operation: "get_port_info", Message: "HTTP 401", Retries: 1},
			expected: "dinstar: get_port_info failed: HTTP 401 (retries: 1)",
		},
		{
			name:     "internal message is not exposed",
			err:      DinstarError{Operation: "get_cdr", Message: "HTTP 500", InternalMsg: "body: boom"},
			expected: "dinstar: get_cdr failed: HTTP 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestDinstarError_DetailedError tests the DetailedError() method
func TestDinstarError_DetailedError(t *testing.T) {
	tests := []struct {
		name     string
		err      DinstarError
		expected string
	}{
		{
			name:     "no internal message falls back to Error",
			err:      DinstarError{Operation: "stop_sms", Message: "gateway error 404"},
			expected: "dinstar: stop_sms failed: gateway error 404",
		},
		{
			name:     "internal message",
			err:      DinstarError{Operation: "get_cdr", Message: "HTTP 500", InternalMsg: "body: boom"},
			expected: "dinstar: get_cdr failed: HTTP 500 (internal: body: boom)",
		},
		{
			name:     "internal message with retries",
			err:      DinstarError{Operation: "get_cdr", Message: "HTTP 401", InternalMsg: "body: ", Retries: 1},
			expected: "dinstar: get_cdr failed: HTTP 401 (internal: body: , retries: 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.DetailedError(); got != tt.expected {
				t.Errorf("DetailedError() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestDinstarError_Classification tests IsLocal and IsGatewayError
func TestDinstarError_Classification(t *testing.T) {
	tests := []struct {
		name        string
		err         *DinstarError
		wantLocal   bool
		wantGateway bool
	}{
		{
			name:      "argument error",
			err:       &DinstarError{Operation: "send_ussd", Message: "text is required", local: true},
			wantLocal: true,
		},
		{
			name:        "gateway status code",
			err:         &DinstarError{Operation: "send_sms", HTTPCode: 200, ErrorCode: intPtr(500)},
			wantGateway: true,
		},
		{
			name: "http failure",
			err:  &DinstarError{Operation: "get_status", HTTPCode: 503},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.IsLocal(); got != tt.wantLocal {
				t.Errorf("IsLocal() = %v, want %v", got, tt.wantLocal)
			}
			if got := tt.err.IsGatewayError(); got != tt.wantGateway {
				t.Errorf("IsGatewayError() = %v, want %v", got, tt.wantGateway)
			}
		})
	}
}

// TestDinstarError_ErrorsAs tests that wrapped errors unwrap to *DinstarError
func TestDinstarError_ErrorsAs(t *testing.T) {
	var err error = &DinstarError{Operation: "query_sms_in_queue", Message: "HTTP 500", HTTPCode: 500}
	wrapped := fmt.Errorf("poll queue: %w", err)

	var dErr *DinstarError
	if !errors.As(wrapped, &dErr) {
		t.Fatal("errors.As failed to find *DinstarError")
	}
	if dErr.HTTPCode != 500 {
		t.Errorf("HTTPCode = %d, want 500", dErr.HTTPCode)
	}
}

// TestIsAuthFailure tests the auth retry trigger codes
func TestIsAuthFailure(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, false},
		{400, false},
		{401, true},
		{403, true},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			if got := isAuthFailure(tt.code); got != tt.want {
				t.Errorf("isAuthFailure(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
