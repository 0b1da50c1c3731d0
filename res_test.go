// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"fmt"
	"testing"

	"github.com/tidwall/gjson"
)

func TestRes_GetValue(t *testing.T) {
	res := Res[DeviceStatus]{
		Success: true,
		body:    gjson.Parse(`{"performance":{"cpu_used":"12","uptime":"3d"},"ports":[{"port":0},{"port":1}]}`),
	}

	tests := []struct {
		name       string
		path       string
		want       string
		wantExists bool
	}{
		{name: "modelled field", path: "performance.cpu_used", want: "12", wantExists: true},
		{name: "unmodelled field", path: "performance.uptime", want: "3d", wantExists: true},
		{name: "array element", path: "ports.1.port", want: "1", wantExists: true},
		{name: "array length", path: "ports.#", want: "2", wantExists: true},
		{name: "missing field", path: "performance.temperature", wantExists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := res.GetValue(tt.path)
			if got.Exists() != tt.wantExists {
				t.Fatalf("GetValue(%q).Exists() = %v, want %v", tt.path, got.Exists(), tt.wantExists)
			}
			if tt.wantExists && got.String() != tt.want {
				t.Errorf("GetValue(%q) = %q, want %q", tt.path, got.String(), tt.want)
			}
		})
	}
}

func TestRes_NoBody(t *testing.T) {
	var res Res[int]

	if res.GetValue("error_code").Exists() {
		t.Error("GetValue() on empty result should not exist")
	}
	if res.JSON() != "" {
		t.Errorf("JSON() = %q, want empty", res.JSON())
	}
	if res.Message() != "" {
		t.Errorf("Message() = %q, want empty", res.Message())
	}
	if res.OK() {
		t.Error("OK() should be false for the zero value")
	}
}

func TestRes_JSON(t *testing.T) {
	raw := `{"error_code":200,"in_queue":3}`
	res := Res[int]{Success: true, body: gjson.Parse(raw)}

	if res.JSON() != raw {
		t.Errorf("JSON() = %q, want %q", res.JSON(), raw)
	}
	if !res.OK() {
		t.Error("OK() should be true")
	}
}

func TestFailed(t *testing.T) {
	res := failed[NoData]("number is required")

	if res.Success {
		t.Error("Success should be false")
	}
	if res.HTTPCode != 0 {
		t.Errorf("HTTPCode = %d, want 0", res.HTTPCode)
	}
	if res.Message() != "number is required" {
		t.Errorf("Message() = %q", res.Message())
	}
	if res.Data != nil || res.RawResponse != nil || res.ErrorCode != nil {
		t.Error("local failures should carry no response data")
	}
}

func ExampleRes_GetValue() {
	res := Res[DeviceStatus]{
		Success: true,
		body:    gjson.Parse(`{"performance":{"cpu_used":"12","uptime":"3d"}}`),
	}

	fmt.Println(res.GetValue("performance.uptime").String())
	// Output: 3d
}
