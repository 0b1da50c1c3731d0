// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"github.com/tidwall/gjson"
)

// NoData is the payload type of operations that return nothing beyond the
// status fields (StopSMSTask, SetPortInfo, STKOperation).
type NoData struct{}

// Res is the result of a gateway operation
//
// Every operation returns a Res together with an error. The error is non-nil
// exactly when Success is false and is a *DinstarError carrying the same
// diagnostics, so callers can either branch on err or inspect the fields.
//
// Optional fields are pointers: nil means the gateway did not provide the
// value (or, for Data, that the operation failed).
//
// Example:
//
//	res, err := client.SendSMS(ctx, "+15550100", "hello", nil, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(*res.Data.TaskID, *res.GatewaySN)
type Res[T any] struct {
	// Success is true when the HTTP call succeeded and the gateway accepted it
	Success bool

	// HTTPCode is the HTTP status code, 0 if no response was received
	HTTPCode int

	// ErrorCode is the gateway status code ("error_code") if it was decoded
	ErrorCode *int

	// Data is the typed payload, always set when Success is true
	Data *T

	// RawResponse is the raw body when it could not be used (decode failure,
	// empty body or non-2xx status)
	RawResponse *string

	// ErrorMessage describes the failure
	ErrorMessage *string

	// GatewaySN is the gateway serial number ("sn") if it was decoded
	GatewaySN *string

	// body is the decoded response, kept for GetValue/JSON
	body gjson.Result
}

// OK reports whether the operation succeeded
func (r Res[T]) OK() bool {
	return r.Success
}

// GetValue retrieves a value from the decoded response body using a gjson path.
//
// This gives access to fields the typed Data does not model, for example
// firmware-specific additions.
//
// Example:
//
//	res, _ := client.GetDeviceStatus(ctx)
//	uptime := res.GetValue("performance.uptime").String()
//
// Returns an empty gjson.Result when no body was decoded.
func (r Res[T]) GetValue(path string) gjson.Result {
	if !r.body.Exists() {
		return gjson.Result{}
	}
	return r.body.Get(path)
}

// JSON returns the decoded response body as a JSON string, or "" when the
// response had no usable body.
func (r Res[T]) JSON() string {
	if !r.body.Exists() {
		return ""
	}
	return r.body.Raw
}

// Message returns the error message or "" when there is none
func (r Res[T]) Message() string {
	if r.ErrorMessage == nil {
		return ""
	}
	return *r.ErrorMessage
}

// failed builds a Res for a call that never reached the network
func failed[T any](msg string) Res[T] {
	return Res[T]{Success: false, ErrorMessage: &msg}
}
