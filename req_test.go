// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"net/http"
	"net/url"
	"testing"
)

func TestReqURLPath(t *testing.T) {
	tests := []struct {
		name string
		req  Req
		want string
	}{
		{
			name: "api endpoint",
			req:  apiGet("get_port_info", nil),
			want: "/api/get_port_info",
		},
		{
			name: "api endpoint with leading slash",
			req:  apiPost("/send_sms", Body{}),
			want: "/api/send_sms",
		},
		{
			name: "verbatim path",
			req:  Req{Path: "/GetSTKView", Method: http.MethodGet},
			want: "/GetSTKView",
		},
		{
			name: "verbatim path without slash",
			req:  Req{Path: "STKGo", Method: http.MethodPost},
			want: "/STKGo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.urlPath(); got != tt.want {
				t.Errorf("urlPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReqOperation(t *testing.T) {
	if got := apiPost("send_sms", Body{}).operation(); got != "send_sms" {
		t.Errorf("operation() = %q, want send_sms", got)
	}
	if got := stkGet(stkFrameIDPath, 0).operation(); got != "GetSTKCurrFrameIndex" {
		t.Errorf("operation() = %q, want GetSTKCurrFrameIndex", got)
	}
}

func TestRequestURL(t *testing.T) {
	client := &Client{BaseURL: "https://192.168.1.100"}

	query := url.Values{}
	query.Set("info_type", "imei,signal")
	query.Set("port", "0,1")

	tests := []struct {
		name string
		req  Req
		want string
	}{
		{
			name: "get with query",
			req:  apiGet("get_port_info", query),
			want: "https://192.168.1.100/api/get_port_info?info_type=imei%2Csignal&port=0%2C1",
		},
		{
			name: "get without query",
			req:  apiGet("query_sms_in_queue", nil),
			want: "https://192.168.1.100/api/query_sms_in_queue",
		},
		{
			name: "post ignores query",
			req:  Req{Path: "get_cdr", Method: http.MethodPost, Query: query, UseAPIPrefix: true},
			want: "https://192.168.1.100/api/get_cdr",
		},
		{
			name: "stk endpoint",
			req:  stkGet(stkViewPath, 2),
			want: "https://192.168.1.100/GetSTKView?port=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.requestURL(tt.req); got != tt.want {
				t.Errorf("requestURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
