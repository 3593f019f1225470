package services

import (
	"database/sql"
	"fmt"

	"github.com/sillaskon/incidentreporthub-be/internal/models"
)

// InboundServiceProvider defines the interface for inbound email services.
type InboundServiceProvider interface {
	Record(sender, subject, body string, attachmentCount int) (int64, error)
	ListInbound() ([]models.InboundEmail, error)
}

// InboundService stores emails received on the inbound webhook. The content
// is kept verbatim; nothing is parsed out of it in this phase.
type InboundService struct {
	db *sql.DB
}

// NewInboundService creates a new InboundService.
func NewInboundService(db *sql.DB) *InboundService {
	return &InboundService{db: db}
}

// Record appends one inbound email row.
func (s *InboundService) Record(sender, subject, body string, attachmentCount int) (int64, error) {
	stmt, err := s.db.Prepare("INSERT INTO inbound_emails (sender, subject, body, has_attachments, attachment_count) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(sender, subject, body, attachmentCount > 0, attachmentCount)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return res.LastInsertId()
}

// ListInbound retrieves all recorded inbound emails.
func (s *InboundService) ListInbound() ([]models.InboundEmail, error) {
	rows, err := s.db.Query(`SELECT id, sender, subject, body, parsed_address, parsed_datetime, parsed_county,
		has_attachments, attachment_count, forwarded_to, forward_status, forwarded_at, forward_sg_message_id, created_at
		FROM inbound_emails ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var emails []models.InboundEmail
	for rows.Next() {
		var e models.InboundEmail
		if err := rows.Scan(&e.ID, &e.Sender, &e.Subject, &e.Body, &e.ParsedAddress, &e.ParsedDatetime,
			&e.ParsedCounty, &e.HasAttachments, &e.AttachmentCount, &e.ForwardedTo, &e.ForwardStatus,
			&e.ForwardedAt, &e.ForwardMsgID, &e.CreatedAt); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
