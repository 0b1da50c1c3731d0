// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Gateway status codes used as success criteria
const (
	// StatusOK is returned by queries and synchronous commands
	StatusOK = 200

	// StatusAccepted is returned when send_sms/send_ussd queued the request
	StatusAccepted = 202
)

// rawResult is the outcome of one request attempt
type rawResult struct {
	// httpSuccessful is true for a 2xx status with a usable (or empty) body
	httpSuccessful bool

	// httpCode is 0 when no response was received
	httpCode int

	// body is the decoded JSON; zero value when empty, null or undecodable
	body gjson.Result

	// rawBody is the response text as received
	rawBody string

	// transportErr is set for encode, connection, read and decode failures
	transportErr string

	// responded is true once a status line was received
	responded bool

	// local is true when the request was never sent
	local bool

	// retries counts auth retries performed for this request
	retries int
}

// decoded reports whether the response body was decoded
func (r rawResult) decoded() bool {
	return r.body.Exists()
}

type ruleKind int

const (
	ruleCode ruleKind = iota
	ruleField
	ruleBody
	ruleHTTP
)

// successRule is the per-endpoint success criterion
type successRule struct {
	kind ruleKind

	// code is the expected gateway status code (ruleCode)
	code int

	// field must be present and non-null (ruleField)
	field string

	// message is reported on failure when no transport error exists
	// (ruleField, ruleBody, ruleHTTP)
	message string
}

// expectCode requires a 2xx response whose error_code equals code
func expectCode(code int) successRule {
	return successRule{kind: ruleCode, code: code}
}

// expectField requires a 2xx response carrying path with a non-null value
func expectField(path, message string) successRule {
	return successRule{kind: ruleField, field: path, message: message}
}

// expectBody requires a 2xx response with a decodable body
func expectBody(message string) successRule {
	return successRule{kind: ruleBody, message: message}
}

// httpOnly requires a 2xx response and nothing else
func httpOnly(message string) successRule {
	return successRule{kind: ruleHTTP, message: message}
}

// outcome is the classified result of a request
type outcome struct {
	success   bool
	errorCode *int
	serial    *string
	raw       *string
	message   *string
}

// normalize classifies raw according to rule
func normalize(raw rawResult, rule successRule) outcome {
	var out outcome

	if code := raw.body.Get("error_code"); code.Type == gjson.Number {
		out.errorCode = optInt(code)
	}
	out.serial = optString(raw.body.Get("sn"))

	switch rule.kind {
	case ruleCode:
		out.success = raw.httpSuccessful && out.errorCode != nil && *out.errorCode == rule.code
	case ruleField:
		f := raw.body.Get(rule.field)
		out.success = raw.httpSuccessful && f.Exists() && f.Type != gjson.Null
	case ruleBody:
		out.success = raw.httpSuccessful && raw.decoded()
	case ruleHTTP:
		out.success = raw.httpSuccessful
	}

	if raw.responded {
		usable := raw.httpSuccessful && raw.decoded()
		if rule.kind == ruleHTTP {
			usable = raw.httpSuccessful && strings.TrimSpace(raw.rawBody) == ""
		}
		if !usable {
			body := raw.rawBody
			out.raw = &body
		}
	}

	out.message = failureMessage(raw, rule, out)
	return out
}

// failureMessage picks the error message: transport error first, then the
// gateway code, then the rule's own message, then a status-based fallback.
func failureMessage(raw rawResult, rule successRule, out outcome) *string {
	var msg string
	switch {
	case raw.transportErr != "":
		msg = raw.transportErr
	case out.success:
		return nil
	case rule.kind == ruleCode && out.errorCode != nil:
		msg = fmt.Sprintf("gateway error %d", *out.errorCode)
	case rule.kind != ruleCode && rule.message != "":
		msg = rule.message
	case !raw.httpSuccessful:
		msg = fmt.Sprintf("HTTP %d", raw.httpCode)
	default:
		msg = "gateway response missing error_code"
	}
	return &msg
}

// do executes req, classifies the response with rule and maps the body with
// mapFn when the call succeeded. A nil mapFn leaves Data unset.
//
// The returned error is non-nil exactly when Res.Success is false.
func do[T any](ctx context.Context, c *Client, req Req, rule successRule, mapFn func(gjson.Result) (*T, error)) (Res[T], error) {
	raw := c.execute(ctx, req)
	out := normalize(raw, rule)

	res := Res[T]{
		Success:      out.success,
		HTTPCode:     raw.httpCode,
		ErrorCode:    out.errorCode,
		RawResponse:  out.raw,
		ErrorMessage: out.message,
		GatewaySN:    out.serial,
		body:         raw.body,
	}

	if res.Success && mapFn != nil {
		data, err := mapFn(raw.body)
		if err != nil {
			msg := err.Error()
			res.Success = false
			res.ErrorMessage = &msg
			if res.RawResponse == nil {
				body := raw.rawBody
				res.RawResponse = &body
			}
			c.logger.Warn(ctx, "Dinstar response missing expected data",
				"operation", req.operation(),
				"error", msg)
		} else {
			res.Data = data
		}
	}

	if res.Success {
		return res, nil
	}

	c.logger.Debug(ctx, "Dinstar operation failed",
		"operation", req.operation(),
		"http_code", res.HTTPCode,
		"message", res.Message())

	return res, &DinstarError{
		Operation:   req.operation(),
		HTTPCode:    res.HTTPCode,
		ErrorCode:   res.ErrorCode,
		Message:     res.Message(),
		InternalMsg: internalDetail(raw),
		Retries:     raw.retries,
		local:       raw.local,
	}
}

// internalDetail summarizes raw for DinstarError.DetailedError
func internalDetail(raw rawResult) string {
	if !raw.responded {
		return ""
	}
	return "body: " + bodyPreview(raw.rawBody)
}

// reject returns a failed Res for an argument error detected before any request
func reject[T any](op, msg string) (Res[T], error) {
	return failed[T](msg), &DinstarError{Operation: op, Message: msg, local: true}
}

// valueOf adapts an infallible struct mapper
func valueOf[T any](fn func(gjson.Result) T) func(gjson.Result) (*T, error) {
	return func(body gjson.Result) (*T, error) {
		v := fn(body)
		return &v, nil
	}
}

// listOf adapts an item mapper to the array stored at key
func listOf[T any](key string, fn func(gjson.Result) T) func(gjson.Result) (*Collection[T], error) {
	return func(body gjson.Result) (*Collection[T], error) {
		return mapList(body, key, fn), nil
	}
}

// intAt maps the integer at key; a missing or non-numeric value is an error
func intAt(key string) func(gjson.Result) (*int, error) {
	return func(body gjson.Result) (*int, error) {
		v := optInt(body.Get(key))
		if v == nil {
			return nil, fmt.Errorf("gateway response missing %s", key)
		}
		return v, nil
	}
}
