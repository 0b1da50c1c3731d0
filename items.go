// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

// SendSMSData is the payload of an accepted send_sms request
type SendSMSData struct {
	SMSInQueue *int `json:"sms_in_queue,omitempty"`
	TaskID     *int `json:"task_id,omitempty"`
}

// SMSResultItem is one record of query_sms_result
type SMSResultItem struct {
	Port      *int    `json:"port,omitempty"`
	Number    *string `json:"number,omitempty"`
	UserID    *int    `json:"user_id,omitempty"`
	Time      *string `json:"time,omitempty"`
	Status    *string `json:"status,omitempty"`
	Count     *int    `json:"count,omitempty"`
	SuccCount *int    `json:"succ_count,omitempty"`
	RefID     *int    `json:"ref_id,omitempty"`
	IMSI      *string `json:"imsi,omitempty"`
}

// SMSDeliveryStatusItem is one record of query_sms_deliver_status
type SMSDeliveryStatusItem struct {
	Port       *int    `json:"port,omitempty"`
	Number     *string `json:"number,omitempty"`
	Time       *string `json:"time,omitempty"`
	RefID      *int    `json:"ref_id,omitempty"`
	StatusCode *int    `json:"status_code,omitempty"`
	IMSI       *string `json:"imsi,omitempty"`
}

// IncomingSMSItem is one received message
type IncomingSMSItem struct {
	IncomingSMSID *int    `json:"incoming_sms_id,omitempty"`
	Port          *int    `json:"port,omitempty"`
	Number        *string `json:"number,omitempty"`
	SMSC          *string `json:"smsc,omitempty"`
	Timestamp     *string `json:"timestamp,omitempty"`
	Text          *string `json:"text,omitempty"`
}

// IncomingSMSData is the payload of query_incoming_sms
type IncomingSMSData struct {
	// SMS is nil when the gateway did not return an "sms" list
	SMS    *Collection[IncomingSMSItem] `json:"sms,omitempty"`
	Read   *int                         `json:"read,omitempty"`
	Unread *int                         `json:"unread,omitempty"`
}

// USSDResultItem is the per-port outcome of send_ussd
type USSDResultItem struct {
	Port   *int `json:"port,omitempty"`
	Status *int `json:"status,omitempty"`
}

// USSDReplyItem is one USSD reply read back with query_ussd_reply
type USSDReplyItem struct {
	Port *int    `json:"port,omitempty"`
	Text *string `json:"text,omitempty"`
}

// PortInfoItem is the state of one gateway port
type PortInfoItem struct {
	Port                 *int    `json:"port,omitempty"`
	Type                 *string `json:"type,omitempty"`
	IMEI                 *string `json:"imei,omitempty"`
	IMSI                 *string `json:"imsi,omitempty"`
	ICCID                *string `json:"iccid,omitempty"`
	Number               *string `json:"number,omitempty"`
	Reg                  *string `json:"reg,omitempty"`
	Slot                 *int    `json:"slot,omitempty"`
	CallState            *string `json:"callstate,omitempty"`
	Signal               *int    `json:"signal,omitempty"`
	GPRS                 *string `json:"gprs,omitempty"`
	RemainCredit         *string `json:"remain_credit,omitempty"`
	RemainMonthlyCredit  *string `json:"remain_monthly_credit,omitempty"`
	RemainDailyCredit    *string `json:"remain_daily_credit,omitempty"`
	RemainDailyCallTime  *string `json:"remain_daily_calltime,omitempty"`
	RemainHourlyCallTime *string `json:"remain_hourly_calltime,omitempty"`
	RemainDailyConnect   *string `json:"remain_daily_connect,omitempty"`

	// CallForwarding is passed through as decoded JSON; its shape differs
	// between firmware releases.
	CallForwarding any `json:"call_forwarding,omitempty"`
}

// CDRItem is one call detail record
type CDRItem struct {
	Port              *int    `json:"port,omitempty"`
	StartDate         *string `json:"start_date,omitempty"`
	AnswerDate        *string `json:"answer_date,omitempty"`
	Duration          *int    `json:"duration,omitempty"`
	SourceNumber      *string `json:"source_number,omitempty"`
	DestinationNumber *string `json:"destination_number,omitempty"`
	Direction         *string `json:"direction,omitempty"`
	IP                *string `json:"ip,omitempty"`
	Codec             *string `json:"codec,omitempty"`
	Hangup            *string `json:"hangup,omitempty"`
	GSMCode           *int    `json:"gsm_code,omitempty"`
	BCCH              *string `json:"bcch,omitempty"`
}

// STKMenuItem is one selectable entry of an STK menu
type STKMenuItem struct {
	ItemID     *int    `json:"item_id,omitempty"`
	ItemString *string `json:"item_string,omitempty"`
}

// STKInfo is the current STK view of a port
type STKInfo struct {
	Title     *string       `json:"title,omitempty"`
	Text      *string       `json:"text,omitempty"`
	InputType *int          `json:"input_type,omitempty"`
	Items     []STKMenuItem `json:"item,omitempty"`
	FrameID   *int          `json:"frame_id,omitempty"`
}

// DeviceStatus is the "performance" block of get_status
type DeviceStatus struct {
	CPUUsed       *string `json:"cpu_used,omitempty"`
	FlashTotal    *string `json:"flash_total,omitempty"`
	FlashUsed     *string `json:"flash_used,omitempty"`
	MemoryTotal   *string `json:"memory_total,omitempty"`
	MemoryCached  *string `json:"memory_cached,omitempty"`
	MemoryBuffers *string `json:"memory_buffers,omitempty"`
	MemoryFree    *string `json:"memory_free,omitempty"`
	MemoryUsed    *string `json:"memory_used,omitempty"`
}
