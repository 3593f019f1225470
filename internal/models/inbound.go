package models

import "time"

// InboundEmail records one email received on the inbound webhook. Nothing is
// parsed out of it yet; the parsed_* and forward-tracking columns exist for
// the reply-processing phase and stay empty here.
type InboundEmail struct {
	ID              int64      `json:"id"`
	Sender          string     `json:"sender"`
	Subject         string     `json:"subject"`
	Body            string     `json:"body"`
	ParsedAddress   *string    `json:"parsed_address"`
	ParsedDatetime  *string    `json:"parsed_datetime"`
	ParsedCounty    *string    `json:"parsed_county"`
	HasAttachments  bool       `json:"has_attachments"`
	AttachmentCount int        `json:"attachment_count"`
	ForwardedTo     *string    `json:"forwarded_to"`
	ForwardStatus   *string    `json:"forward_status"`
	ForwardedAt     *time.Time `json:"forwarded_at"`
	ForwardMsgID    *string    `json:"forward_sg_message_id"`
	CreatedAt       time.Time  `json:"created_at"`
}
