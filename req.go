// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"net/http"
	"net/url"
	"strings"
)

// APIPrefix is the path segment in front of every /api endpoint
const APIPrefix = "/api/"

// Req describes a single gateway request
//
// A Req is built fresh by each operation and is not modified once it has been
// handed to the transport, so the auth retry resends exactly the same request.
type Req struct {
	// Path is the endpoint name ("send_sms") or a verbatim path ("/GetSTKView")
	Path string

	// Method is http.MethodGet or http.MethodPost
	Method string

	// Query holds the GET parameters, encoded into the URL query string
	Query url.Values

	// Body holds the POST payload, sent as application/json
	Body Body

	// UseAPIPrefix joins Path under APIPrefix when true
	UseAPIPrefix bool
}

// apiGet builds a GET request under the /api/ prefix
func apiGet(path string, query url.Values) Req {
	return Req{Path: path, Method: http.MethodGet, Query: query, UseAPIPrefix: true}
}

// apiPost builds a POST request under the /api/ prefix
func apiPost(path string, body Body) Req {
	return Req{Path: path, Method: http.MethodPost, Body: body, UseAPIPrefix: true}
}

// urlPath returns the request path relative to the gateway base URL
func (r Req) urlPath() string {
	if r.UseAPIPrefix {
		return APIPrefix + strings.TrimLeft(r.Path, "/")
	}
	if !strings.HasPrefix(r.Path, "/") {
		return "/" + r.Path
	}
	return r.Path
}

// operation returns the short operation name used in logs and errors
func (r Req) operation() string {
	return strings.TrimLeft(r.Path, "/")
}

// SMSOptions holds the optional SendSMS settings
type SMSOptions struct {
	// Ports limits sending to these ports; nil lets the gateway choose
	Ports []int

	// Encoding is one of ValidEncodings; empty leaves the gateway default
	Encoding string

	// StatusReport requests delivery reports (default true)
	StatusReport bool
}

// SMSResultQuery filters QuerySMSResult. Nil slices and empty strings omit
// the filter; an empty non-nil slice is sent as [].
type SMSResultQuery struct {
	Numbers    []string
	Ports      []int
	TimeAfter  string
	TimeBefore string
	UserIDs    []int
}

// DeliveryStatusQuery filters QuerySMSDeliveryStatus
type DeliveryStatusQuery struct {
	Numbers    []string
	Ports      []int
	TimeAfter  string
	TimeBefore string
}

// IncomingSMSQuery filters QueryIncomingSMS
type IncomingSMSQuery struct {
	// IncomingSMSID returns messages starting at this id when set
	IncomingSMSID *int

	// Flag is FlagUnread (default), FlagRead or FlagAll
	Flag string

	// Ports restricts the query; nil queries every port
	Ports []int
}

// CDRQuery filters GetCDR
type CDRQuery struct {
	Ports      []int
	TimeAfter  string
	TimeBefore string
}

// PortActionOptions holds the optional SetPortInfo settings
type PortActionOptions struct {
	Param  string
	Number string
}

// STKOptions holds the optional STKOperation settings
type STKOptions struct {
	Item   *int
	Param  string
	Action string
}
