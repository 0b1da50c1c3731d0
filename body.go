// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body is an immutable JSON payload for the POST endpoints, built path by
// path with sjson.
//
// The first failing Set or Delete is remembered and turns the rest of the
// chain into no-ops. A Body carrying an error is never sent: the call fails
// locally before any request is made.
//
// Example:
//
//	body := dinstar.Body{}.
//	    Set("text", "hello").
//	    Set("param.0.number", "+15550100").
//	    Set("port", []int{0, 1})
//
//	payload, err := body.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
type Body struct {
	str string
	err error
}

// ArrayBody returns an empty JSON array body. Values can be appended with
// Set("-1", value).
//
// Example:
//
//	body := dinstar.ArrayBody().Set("-1", "performance") // ["performance"]
func ArrayBody() Body {
	return Body{str: "[]"}
}

// Set returns a copy of b with value stored at path ("param.0.number").
// Composite values are marshaled as JSON; a value that cannot be marshaled
// records an error.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// SetIf calls Set only when cond is true. It keeps optional request fields
// inside a single builder chain.
//
// Example:
//
//	body := dinstar.Body{}.
//	    SetIf(len(ports) > 0, "port", ports).
//	    SetIf(timeAfter != "", "time_after", timeAfter)
func (b Body) SetIf(cond bool, path string, value any) Body {
	if !cond {
		return b
	}
	return b.Set(path, value)
}

// Delete returns a copy of b without path
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// String returns the payload text and the recorded error, if any.
// An untouched Body renders as "{}": filter endpoints always get an object.
func (b Body) String() (string, error) {
	if b.err != nil {
		return b.str, b.err
	}
	if b.str == "" {
		return "{}", nil
	}
	return b.str, nil
}

// Err returns the recorded error
func (b Body) Err() error {
	return b.err
}

// Res returns the payload text, or "" when an error was recorded
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	s, _ := b.String()
	return s
}

// Bytes is String as a byte slice, ready to be sent
func (b Body) Bytes() ([]byte, error) {
	s, err := b.String()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
