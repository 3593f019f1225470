package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sillaskon/incidentreporthub-be/internal/county"
	"github.com/sillaskon/incidentreporthub-be/internal/mailer"
	"github.com/sillaskon/incidentreporthub-be/internal/models"
)

// RequestServiceProvider defines the interface for incident request services.
type RequestServiceProvider interface {
	CreateRequest(ctx context.Context, in IntakeInput) (int64, error)
	GetRecentRequests(limit int) ([]models.IncidentRequest, error)
	ListRequests() ([]models.IncidentRequest, error)
}

// IntakeInput carries one validated submission into the workflow. Token is
// the raw bearer string as presented; Username is the verified subject.
type IntakeInput struct {
	Token            string
	Username         string
	IncidentAddress  string
	IncidentDatetime string
	County           string
}

// RequestService runs the intake workflow: resolve the county, persist the
// request, then attempt notification.
type RequestService struct {
	db        *sql.DB
	directory *county.Directory
	sender    mailer.Sender
	users     UserServiceProvider
}

// NewRequestService creates a new RequestService.
func NewRequestService(db *sql.DB, directory *county.Directory, sender mailer.Sender, users UserServiceProvider) *RequestService {
	return &RequestService{db: db, directory: directory, sender: sender, users: users}
}

// CreateRequest processes one submission. The steps run in a fixed order:
// county resolution, persistence, notification. Once the insert succeeds the
// request is durable; a notification failure is reported to the caller but
// does not remove the record, it only leaves notified unset.
func (s *RequestService) CreateRequest(ctx context.Context, in IntakeInput) (int64, error) {
	countyEmail, err := s.directory.Resolve(in.County)
	if err != nil {
		return 0, err
	}

	// Best effort: tokens verify statelessly, so the submitter may no longer
	// exist. The ledger row keeps the raw token as provenance either way.
	requesterEmail := ""
	user, err := s.users.GetUserByUsername(in.Username)
	switch {
	case err == nil:
		requesterEmail = user.Email
	case errors.Is(err, ErrStorageUnavailable):
		return 0, err
	}

	res, err := s.db.Exec(
		`INSERT INTO incident_requests
		 (user_token, created_by, requester_email, incident_address, incident_datetime, county, county_email)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Token, in.Username, requesterEmail, in.IncidentAddress, in.IncidentDatetime, in.County, countyEmail,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	subject := fmt.Sprintf("Fire Incident Report Request: %s", in.IncidentDatetime)
	body := fmt.Sprintf(
		"Please provide the incident report for the following details:\nAddress: %s\nDate/Time: %s\nCounty: %s\n",
		in.IncidentAddress, in.IncidentDatetime, in.County,
	)
	headers := map[string]string{
		"X-IRH-Address":  in.IncidentAddress,
		"X-IRH-DateTime": in.IncidentDatetime,
		"X-IRH-County":   in.County,
	}

	if err := s.sender.Send(ctx, countyEmail, subject, body, headers); err != nil {
		log.Warn().Err(err).Int64("request_id", id).Str("county", in.County).
			Msg("Notification failed; request remains persisted")
		return id, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	if _, err := s.db.Exec("UPDATE incident_requests SET notified = 1 WHERE id = ?", id); err != nil {
		log.Error().Err(err).Int64("request_id", id).Msg("Failed to mark request notified")
	}

	log.Info().Int64("request_id", id).Str("county", in.County).Str("to", countyEmail).
		Msg("Incident request created and email sent")
	return id, nil
}

// GetRecentRequests retrieves the most recent requests, newest first.
func (s *RequestService) GetRecentRequests(limit int) ([]models.IncidentRequest, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	return s.queryRequests("SELECT id, user_token, created_by, requester_email, incident_address, incident_datetime, county, county_email, notified, created_at FROM incident_requests ORDER BY id DESC LIMIT ?", limit)
}

// ListRequests retrieves every request in the ledger.
func (s *RequestService) ListRequests() ([]models.IncidentRequest, error) {
	return s.queryRequests("SELECT id, user_token, created_by, requester_email, incident_address, incident_datetime, county, county_email, notified, created_at FROM incident_requests ORDER BY id")
}

func (s *RequestService) queryRequests(query string, args ...any) ([]models.IncidentRequest, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var reqs []models.IncidentRequest
	for rows.Next() {
		var req models.IncidentRequest
		if err := rows.Scan(&req.ID, &req.UserToken, &req.CreatedBy, &req.RequesterEmail,
			&req.IncidentAddress, &req.IncidentDatetime, &req.County, &req.CountyEmail,
			&req.Notified, &req.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
