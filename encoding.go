// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"fmt"
	"strings"
)

// SMS encoding values accepted by send_sms
const (
	// EncodingUnicode sends UCS-2 text (70 characters per segment)
	EncodingUnicode = "unicode"

	// EncodingGSM7Bit sends GSM 03.38 text (160 characters per segment)
	EncodingGSM7Bit = "gsm7bit"

	// Encoding8Bit sends raw 8-bit data
	Encoding8Bit = "8bit"
)

// ValidEncodings contains the list of valid SMS encoding values
var ValidEncodings = []string{
	EncodingUnicode,
	EncodingGSM7Bit,
	Encoding8Bit,
}

// ValidateEncoding checks if the SMS encoding is valid
//
// Returns an error if the encoding is not one of the supported values.
func ValidateEncoding(enc string) error {
	for _, valid := range ValidEncodings {
		if enc == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid encoding: %s (valid values: %s)", enc, strings.Join(ValidEncodings, ", "))
}

// USSD commands accepted by send_ussd
const (
	// USSDSend sends the USSD text on the given ports
	USSDSend = "send"

	// USSDCancel terminates the current USSD session
	USSDCancel = "cancel"
)

// ValidateUSSDCommand checks if the USSD command is valid
func ValidateUSSDCommand(cmd string) error {
	if cmd == USSDSend || cmd == USSDCancel {
		return nil
	}
	return fmt.Errorf("invalid USSD command: %s (valid values: %s, %s)", cmd, USSDSend, USSDCancel)
}

// Incoming SMS flags accepted by query_incoming_sms
const (
	FlagUnread = "unread"
	FlagRead   = "read"
	FlagAll    = "all"
)

// set_port_info actions and call-forward parameters
const (
	ActionCallForward = "CallForward"
	ActionSlot        = "slot"
	ActionReset       = "reset"
	ActionPower       = "power"
	ActionLock        = "lock"

	// CallForwardCancelAll clears every forwarding rule; it is the only
	// CallForward parameter that does not need a destination number.
	CallForwardCancelAll = "CancelAll"
)

// DefaultPortInfoTypes is the info_type list requested by GetPortInfo when the
// caller does not name any.
var DefaultPortInfoTypes = []string{
	"port",
	"type",
	"imei",
	"imsi",
	"iccid",
	"reg",
	"slot",
	"callstate",
	"signal",
	"gprs",
	"remain_credit",
	"remain_monthly_credit",
	"remain_daily_credit",
	"remain_daily_calltime",
	"remain_hourly_calltime",
	"remain_daily_connect",
}
