// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package dinstar

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// field is the ordered list of keys a value may appear under. The first key
// that is present with a non-null value wins.
type field []string

// Keys with vendor spelling variants
var (
	cdrBCCH            = field{"bcch", "bech"}
	portCallForwarding = field{"CallForwarding", "CallForward"}
)

// lookup resolves f against obj
func (f field) lookup(obj gjson.Result) gjson.Result {
	for _, key := range f {
		r := obj.Get(gjsonKey(key))
		if r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

// gjsonKey escapes gjson path syntax in a literal key
func gjsonKey(key string) string {
	if !strings.ContainsAny(key, `.*?|#@\!=<>%`) {
		return key
	}
	var b strings.Builder
	for _, ch := range key {
		if strings.ContainsRune(`.*?|#@\!=<>%`, ch) {
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// optInt converts a JSON number or numeric string to *int
func optInt(r gjson.Result) *int {
	switch r.Type {
	case gjson.Number:
		if r.Num != math.Trunc(r.Num) {
			return nil
		}
		v := int(r.Int())
		return &v
	case gjson.String:
		v, err := strconv.Atoi(strings.TrimSpace(r.Str))
		if err != nil {
			return nil
		}
		return &v
	default:
		return nil
	}
}

// optString converts a JSON scalar to *string; objects, arrays and null map to nil
func optString(r gjson.Result) *string {
	switch r.Type {
	case gjson.String:
		v := r.Str
		return &v
	case gjson.Number, gjson.True, gjson.False:
		v := r.Raw
		return &v
	default:
		return nil
	}
}

// optValue returns the decoded Go value of r, nil when absent
func optValue(r gjson.Result) any {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	return r.Value()
}

func intField(obj gjson.Result, keys ...string) *int {
	return optInt(field(keys).lookup(obj))
}

func stringField(obj gjson.Result, keys ...string) *string {
	return optString(field(keys).lookup(obj))
}

// mapList maps every element of the array at key with fn. A missing or
// non-array key yields an empty collection.
func mapList[T any](body gjson.Result, key string, fn func(gjson.Result) T) *Collection[T] {
	list := body.Get(key)
	if !list.IsArray() {
		return NewCollection[T]()
	}
	elems := list.Array()
	items := make([]T, 0, len(elems))
	for _, elem := range elems {
		items = append(items, fn(elem))
	}
	return &Collection[T]{items: items}
}

func mapSendSMS(body gjson.Result) SendSMSData {
	return SendSMSData{
		SMSInQueue: intField(body, "sms_in_queue"),
		TaskID:     intField(body, "task_id"),
	}
}

func mapSMSResultItem(item gjson.Result) SMSResultItem {
	return SMSResultItem{
		Port:      intField(item, "port"),
		Number:    stringField(item, "number"),
		UserID:    intField(item, "user_id"),
		Time:      stringField(item, "time"),
		Status:    stringField(item, "status"),
		Count:     intField(item, "count"),
		SuccCount: intField(item, "succ_count"),
		RefID:     intField(item, "ref_id"),
		IMSI:      stringField(item, "imsi"),
	}
}

func mapSMSDeliveryStatusItem(item gjson.Result) SMSDeliveryStatusItem {
	return SMSDeliveryStatusItem{
		Port:       intField(item, "port"),
		Number:     stringField(item, "number"),
		Time:       stringField(item, "time"),
		RefID:      intField(item, "ref_id"),
		StatusCode: intField(item, "status_code"),
		IMSI:       stringField(item, "imsi"),
	}
}

func mapIncomingSMSItem(item gjson.Result) IncomingSMSItem {
	return IncomingSMSItem{
		IncomingSMSID: intField(item, "incoming_sms_id"),
		Port:          intField(item, "port"),
		Number:        stringField(item, "number"),
		SMSC:          stringField(item, "smsc"),
		Timestamp:     stringField(item, "timestamp"),
		Text:          stringField(item, "text"),
	}
}

func mapIncomingSMS(body gjson.Result) IncomingSMSData {
	data := IncomingSMSData{
		Read:   intField(body, "read"),
		Unread: intField(body, "unread"),
	}
	if body.Get("sms").IsArray() {
		data.SMS = mapList(body, "sms", mapIncomingSMSItem)
	}
	return data
}

func mapUSSDResultItem(item gjson.Result) USSDResultItem {
	return USSDResultItem{
		Port:   intField(item, "port"),
		Status: intField(item, "status"),
	}
}

func mapUSSDReplyItem(item gjson.Result) USSDReplyItem {
	return USSDReplyItem{
		Port: intField(item, "port"),
		Text: stringField(item, "text"),
	}
}

func mapPortInfoItem(item gjson.Result) PortInfoItem {
	return PortInfoItem{
		Port:                 intField(item, "port"),
		Type:                 stringField(item, "type"),
		IMEI:                 stringField(item, "imei"),
		IMSI:                 stringField(item, "imsi"),
		ICCID:                stringField(item, "iccid"),
		Number:               stringField(item, "number"),
		Reg:                  stringField(item, "reg"),
		Slot:                 intField(item, "slot"),
		CallState:            stringField(item, "callstate"),
		Signal:               intField(item, "signal"),
		GPRS:                 stringField(item, "gprs"),
		RemainCredit:         stringField(item, "remain_credit"),
		RemainMonthlyCredit:  stringField(item, "remain_monthly_credit"),
		RemainDailyCredit:    stringField(item, "remain_daily_credit"),
		RemainDailyCallTime:  stringField(item, "remain_daily_calltime"),
		RemainHourlyCallTime: stringField(item, "remain_hourly_calltime"),
		RemainDailyConnect:   stringField(item, "remain_daily_connect"),
		CallForwarding:       optValue(portCallForwarding.lookup(item)),
	}
}

func mapCDRItem(item gjson.Result) CDRItem {
	return CDRItem{
		Port:              intField(item, "port"),
		StartDate:         stringField(item, "start_date"),
		AnswerDate:        stringField(item, "answer_date"),
		Duration:          intField(item, "duration"),
		SourceNumber:      stringField(item, "source_number"),
		DestinationNumber: stringField(item, "destination_number"),
		Direction:         stringField(item, "direction"),
		IP:                stringField(item, "ip"),
		Codec:             stringField(item, "codec"),
		Hangup:            stringField(item, "hangup"),
		GSMCode:           intField(item, "gsm_code"),
		BCCH:              optString(cdrBCCH.lookup(item)),
	}
}

func mapSTKInfo(body gjson.Result) STKInfo {
	info := STKInfo{
		Title:     stringField(body, "title"),
		Text:      stringField(body, "text"),
		InputType: intField(body, "input_type"),
		FrameID:   intField(body, "frame_id"),
	}
	if items := body.Get("item"); items.IsArray() {
		for _, it := range items.Array() {
			info.Items = append(info.Items, STKMenuItem{
				ItemID:     intField(it, "item_id"),
				ItemString: stringField(it, "item_string"),
			})
		}
	}
	return info
}

func mapDeviceStatus(perf gjson.Result) DeviceStatus {
	return DeviceStatus{
		CPUUsed:       stringField(perf, "cpu_used"),
		FlashTotal:    stringField(perf, "flash_total"),
		FlashUsed:     stringField(perf, "flash_used"),
		MemoryTotal:   stringField(perf, "memory_total"),
		MemoryCached:  stringField(perf, "memory_cached"),
		MemoryBuffers: stringField(perf, "memory_buffers"),
		MemoryFree:    stringField(perf, "memory_free"),
		MemoryUsed:    stringField(perf, "memory_used"),
	}
}
