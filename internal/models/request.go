package models

import "time"

// IncidentRequest is one row of the request ledger: a submitted incident
// report request together with the destination it was routed to.
type IncidentRequest struct {
	ID               int64     `json:"id"`
	UserToken        string    `json:"-"` // raw bearer token, kept as provenance
	CreatedBy        string    `json:"created_by"`
	RequesterEmail   string    `json:"requester_email"`
	IncidentAddress  string    `json:"incident_address"`
	IncidentDatetime string    `json:"incident_datetime"`
	County           string    `json:"county"`
	CountyEmail      string    `json:"county_email"`
	Notified         bool      `json:"notified"`
	CreatedAt        time.Time `json:"created_at"`
}
