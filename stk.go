// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// STK endpoints live outside the /api/ prefix and do not report a gateway
// status code. Their success criteria differ per endpoint.
const (
	stkViewPath       = "/GetSTKView"
	stkGoPath         = "/STKGo"
	stkFrameIDPath    = "/GetSTKCurrFrameIndex"
	stkErrorMessage   = "STK API error or unparsable response"
	stkGoErrorMessage = "STK Operation Error"
)

// stkGet builds a verbatim-path GET for port
func stkGet(path string, port int) Req {
	query := url.Values{}
	query.Set("port", strconv.Itoa(port))
	return Req{Path: path, Method: http.MethodGet, Query: query}
}

// QuerySTKInfo returns the STK menu currently displayed on port
//
// Any decodable JSON body counts as success.
//
// Example:
//
//	res, err := client.QuerySTKInfo(ctx, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, item := range res.Data.Items {
//	    fmt.Println(*item.ItemID, *item.ItemString)
//	}
func (c *Client) QuerySTKInfo(ctx context.Context, port int) (Res[STKInfo], error) {
	return do(ctx, c, stkGet(stkViewPath, port), expectBody(stkErrorMessage), valueOf(mapSTKInfo))
}

// STKOperation navigates the STK menu on port
//
// Any 2xx response counts as success, whatever its body.
//
// Example:
//
//	// select the second entry, then confirm
//	_, err := client.STKOperation(ctx, 0, dinstar.STKItem(2))
//	_, err = client.STKOperation(ctx, 0, dinstar.STKAction("ok"))
func (c *Client) STKOperation(ctx context.Context, port int, mods ...func(*STKOptions)) (Res[NoData], error) {
	var opts STKOptions
	for _, mod := range mods {
		mod(&opts)
	}

	body := Body{}.
		Set("port", port).
		SetIf(opts.Item != nil, "item", opts.Item).
		SetIf(opts.Param != "", "param", opts.Param).
		SetIf(opts.Action != "", "action", opts.Action)

	req := Req{Path: stkGoPath, Method: http.MethodPost, Body: body}
	return do[NoData](ctx, c, req, httpOnly(stkGoErrorMessage), nil)
}

// QuerySTKFrameID returns the index of the STK frame displayed on port.
// Success requires a non-null "frame_id" in the response.
func (c *Client) QuerySTKFrameID(ctx context.Context, port int) (Res[int], error) {
	return do(ctx, c, stkGet(stkFrameIDPath, port), expectField("frame_id", stkErrorMessage), intAt("frame_id"))
}
