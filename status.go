// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"context"

	"github.com/tidwall/gjson"
)

const statusErrorMessage = "API error or missing 'performance' data"

// GetDeviceStatus returns CPU, flash and memory usage of the gateway
//
// get_status does not report a gateway status code; success requires a
// "performance" object in the response.
//
// Example:
//
//	res, err := client.GetDeviceStatus(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("cpu", *res.Data.CPUUsed)
func (c *Client) GetDeviceStatus(ctx context.Context) (Res[DeviceStatus], error) {
	body := ArrayBody().Set("-1", "performance")

	return do(ctx, c, apiPost("get_status", body), expectField("performance", statusErrorMessage),
		valueOf(func(body gjson.Result) DeviceStatus {
			return mapDeviceStatus(body.Get("performance"))
		}))
}
