// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SendSMS queues a text message for recipient
//
// params carries extra per-recipient fields of the send_sms "param" entry
// (for example "text_param" substitutions). The recipient number is added to
// it, and smsID becomes the entry's "user_id" unless params already sets one.
// The gateway echoes user_id in QuerySMSResult so callers can correlate
// results with their own records.
//
// Success requires gateway status 202 (queued).
//
// Example:
//
//	res, err := client.SendSMS(ctx, "+15550100", "hello", nil, 1,
//	    dinstar.SMSPorts(0),
//	    dinstar.SMSEncoding(dinstar.EncodingUnicode))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("task", *res.Data.TaskID)
func (c *Client) SendSMS(ctx context.Context, recipient, text string, params map[string]any, smsID int, mods ...func(*SMSOptions)) (Res[SendSMSData], error) {
	opts := SMSOptions{StatusReport: true}
	for _, mod := range mods {
		mod(&opts)
	}

	if opts.Encoding != "" {
		if err := ValidateEncoding(opts.Encoding); err != nil {
			return reject[SendSMSData]("send_sms", err.Error())
		}
	}

	entry := make(map[string]any, len(params)+2)
	for k, v := range params {
		entry[k] = v
	}
	entry["number"] = recipient
	if _, ok := entry["user_id"]; !ok {
		entry["user_id"] = smsID
	}

	body := Body{}.
		Set("text", text).
		Set("param", []map[string]any{entry}).
		SetIf(opts.Ports != nil, "port", opts.Ports).
		SetIf(opts.Encoding != "", "encoding", opts.Encoding).
		Set("request_status_report", opts.StatusReport)

	return do(ctx, c, apiPost("send_sms", body), expectCode(StatusAccepted), valueOf(mapSendSMS))
}

// QuerySMSResult returns the per-recipient send results matching q
//
// Example:
//
//	res, err := client.QuerySMSResult(ctx, dinstar.SMSResultQuery{
//	    UserIDs: []int{1, 2},
//	})
//	for _, r := range res.Data.All() {
//	    fmt.Println(*r.Number, *r.Status)
//	}
func (c *Client) QuerySMSResult(ctx context.Context, q SMSResultQuery) (Res[Collection[SMSResultItem]], error) {
	body := Body{}.
		SetIf(q.Numbers != nil, "number", q.Numbers).
		SetIf(q.Ports != nil, "port", q.Ports).
		SetIf(q.TimeAfter != "", "time_after", q.TimeAfter).
		SetIf(q.TimeBefore != "", "time_before", q.TimeBefore).
		SetIf(q.UserIDs != nil, "user_id", q.UserIDs)

	return do(ctx, c, apiPost("query_sms_result", body), expectCode(StatusOK),
		listOf("result", mapSMSResultItem))
}

// QuerySMSDeliveryStatus returns the delivery reports matching q
func (c *Client) QuerySMSDeliveryStatus(ctx context.Context, q DeliveryStatusQuery) (Res[Collection[SMSDeliveryStatusItem]], error) {
	body := Body{}.
		SetIf(q.Numbers != nil, "number", q.Numbers).
		SetIf(q.Ports != nil, "port", q.Ports).
		SetIf(q.TimeAfter != "", "time_after", q.TimeAfter).
		SetIf(q.TimeBefore != "", "time_before", q.TimeBefore)

	return do(ctx, c, apiPost("query_sms_deliver_status", body), expectCode(StatusOK),
		listOf("result", mapSMSDeliveryStatusItem))
}

// QuerySMSInQueue returns the number of messages waiting to be sent
func (c *Client) QuerySMSInQueue(ctx context.Context) (Res[int], error) {
	return do(ctx, c, apiGet("query_sms_in_queue", nil), expectCode(StatusOK), intAt("in_queue"))
}

// QueryIncomingSMS lists received messages
//
// An empty q.Flag queries unread messages.
//
// Example:
//
//	res, err := client.QueryIncomingSMS(ctx, dinstar.IncomingSMSQuery{
//	    Flag:  dinstar.FlagAll,
//	    Ports: []int{0, 1},
//	})
func (c *Client) QueryIncomingSMS(ctx context.Context, q IncomingSMSQuery) (Res[IncomingSMSData], error) {
	flag := q.Flag
	if flag == "" {
		flag = FlagUnread
	}

	query := url.Values{}
	query.Set("flag", flag)
	if q.IncomingSMSID != nil {
		query.Set("incoming_sms_id", strconv.Itoa(*q.IncomingSMSID))
	}
	if q.Ports != nil {
		query.Set("port", joinPorts(q.Ports))
	}

	return do(ctx, c, apiGet("query_incoming_sms", query), expectCode(StatusOK), valueOf(mapIncomingSMS))
}

// SendUSSD sends a USSD command on ports
//
// command is USSDSend or USSDCancel. USSDSend requires a non-empty text.
// Success requires gateway status 202; the reply is read back later with
// QueryUSSDReply.
//
// Example:
//
//	res, err := client.SendUSSD(ctx, []int{0}, "*100#", dinstar.USSDSend)
func (c *Client) SendUSSD(ctx context.Context, ports []int, text, command string) (Res[Collection[USSDResultItem]], error) {
	if err := ValidateUSSDCommand(command); err != nil {
		return reject[Collection[USSDResultItem]]("send_ussd", err.Error())
	}
	if command == USSDSend && text == "" {
		return reject[Collection[USSDResultItem]]("send_ussd", "text is required for USSD send command")
	}

	body := Body{}.
		Set("port", nonNilPorts(ports)).
		Set("command", command).
		SetIf(text != "", "text", text)

	return do(ctx, c, apiPost("send_ussd", body), expectCode(StatusAccepted),
		listOf("result", mapUSSDResultItem))
}

// QueryUSSDReply returns the USSD replies received on ports
func (c *Client) QueryUSSDReply(ctx context.Context, ports []int) (Res[Collection[USSDReplyItem]], error) {
	query := url.Values{}
	query.Set("port", joinPorts(ports))

	return do(ctx, c, apiGet("query_ussd_reply", query), expectCode(StatusOK),
		listOf("reply", mapUSSDReplyItem))
}

// StopSMSTask cancels a queued send_sms task
func (c *Client) StopSMSTask(ctx context.Context, taskID int) (Res[NoData], error) {
	query := url.Values{}
	query.Set("task_id", strconv.Itoa(taskID))

	return do[NoData](ctx, c, apiGet("stop_sms", query), expectCode(StatusOK), nil)
}

// GetPortInfo returns the state of the gateway ports
//
// infoTypes selects the fields to report; empty requests DefaultPortInfoTypes.
// ports selects the ports; nil requests every port (0..NumberOfPorts-1).
//
// Example:
//
//	res, err := client.GetPortInfo(ctx, nil, nil)
//	for _, p := range res.Data.All() {
//	    fmt.Println(*p.Port, *p.Reg, *p.Signal)
//	}
func (c *Client) GetPortInfo(ctx context.Context, infoTypes []string, ports []int) (Res[Collection[PortInfoItem]], error) {
	if len(infoTypes) == 0 {
		infoTypes = DefaultPortInfoTypes
	}

	query := url.Values{}
	query.Set("info_type", strings.Join(infoTypes, ","))
	if ports != nil {
		query.Set("port", joinPorts(ports))
	} else {
		query.Set("port", c.allPorts())
	}

	return do(ctx, c, apiGet("get_port_info", query), expectCode(StatusOK),
		listOf("info", mapPortInfoItem))
}

// SetPortInfo performs action on a port
//
// ActionCallForward requires ForwardNumber unless ActionParam is
// CallForwardCancelAll.
//
// Example:
//
//	res, err := client.SetPortInfo(ctx, 0, dinstar.ActionCallForward,
//	    dinstar.ActionParam(dinstar.CallForwardCancelAll))
func (c *Client) SetPortInfo(ctx context.Context, port int, action string, mods ...func(*PortActionOptions)) (Res[NoData], error) {
	var opts PortActionOptions
	for _, mod := range mods {
		mod(&opts)
	}

	if action == ActionCallForward && opts.Param != CallForwardCancelAll && opts.Number == "" {
		return reject[NoData]("set_port_info", "number is required for CallForward unless param is CancelAll")
	}

	query := url.Values{}
	query.Set("port", strconv.Itoa(port))
	query.Set("action", action)
	if opts.Param != "" {
		query.Set("param", opts.Param)
	}
	if action == ActionCallForward && opts.Number != "" {
		query.Set("number", opts.Number)
	}

	return do[NoData](ctx, c, apiGet("set_port_info", query), expectCode(StatusOK), nil)
}

// GetCDR returns call detail records matching q
//
// Example:
//
//	res, err := client.GetCDR(ctx, dinstar.CDRQuery{
//	    TimeAfter: "2025-01-01 00:00:00",
//	})
func (c *Client) GetCDR(ctx context.Context, q CDRQuery) (Res[Collection[CDRItem]], error) {
	body := Body{}.
		SetIf(q.Ports != nil, "port", q.Ports).
		SetIf(q.TimeAfter != "", "time_after", q.TimeAfter).
		SetIf(q.TimeBefore != "", "time_before", q.TimeBefore)

	return do(ctx, c, apiPost("get_cdr", body), expectCode(StatusOK), listOf("cdr", mapCDRItem))
}

// nonNilPorts keeps an empty port list rendering as [] rather than null
func nonNilPorts(ports []int) []int {
	if ports == nil {
		return []int{}
	}
	return ports
}
