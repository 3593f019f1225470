package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sillaskon/incidentreporthub-be/internal/county"
)

type fakeSender struct {
	err  error
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
	headers map[string]string
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string, headers map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body, headers: headers})
	return nil
}

func newTestDirectory(t *testing.T) *county.Directory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counties.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("County,Request Email\nLos Angeles,records@lafd.example\n"), 0644))
	d, err := county.New(path, "")
	require.NoError(t, err)
	return d
}

func TestCreateRequest(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewRequestService(db, newTestDirectory(t), sender, NewUserService(db))

	users := NewUserService(db)
	_, err := users.Register("alice", "secret", "a@x.com")
	require.NoError(t, err)

	in := IntakeInput{
		Token:            "raw-token",
		Username:         "alice",
		IncidentAddress:  "123 Main St",
		IncidentDatetime: "2025-08-26 14:00",
		County:           "Los Angeles",
	}

	id, err := svc.CreateRequest(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// Identifiers strictly increase.
	id, err = svc.CreateRequest(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	reqs, err := svc.ListRequests()
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "Los Angeles", reqs[0].County)
	assert.Equal(t, "records@lafd.example", reqs[0].CountyEmail)
	assert.Equal(t, "alice", reqs[0].CreatedBy)
	assert.Equal(t, "a@x.com", reqs[0].RequesterEmail)
	assert.Equal(t, "raw-token", reqs[0].UserToken)
	assert.True(t, reqs[0].Notified)

	require.Len(t, sender.sent, 2)
	m := sender.sent[0]
	assert.Equal(t, "records@lafd.example", m.to)
	assert.Equal(t, "Fire Incident Report Request: 2025-08-26 14:00", m.subject)
	assert.Contains(t, m.body, "Address: 123 Main St")
	assert.Equal(t, "Los Angeles", m.headers["X-IRH-County"])
}

func TestCreateRequestUnknownCounty(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewRequestService(db, newTestDirectory(t), sender, NewUserService(db))

	_, err := svc.CreateRequest(context.Background(), IntakeInput{
		Token:            "raw-token",
		Username:         "alice",
		IncidentAddress:  "1 Ocean Blvd",
		IncidentDatetime: "2025-08-26 14:00",
		County:           "Atlantis",
	})
	assert.ErrorIs(t, err, county.ErrUnknownCounty)

	// Nothing persisted, nothing sent.
	reqs, err := svc.ListRequests()
	require.NoError(t, err)
	assert.Empty(t, reqs)
	assert.Empty(t, sender.sent)
}

func TestCreateRequestNotificationFailure(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{err: errors.New("provider unreachable")}
	svc := NewRequestService(db, newTestDirectory(t), sender, NewUserService(db))

	id, err := svc.CreateRequest(context.Background(), IntakeInput{
		Token:            "raw-token",
		Username:         "alice",
		IncidentAddress:  "123 Main St",
		IncidentDatetime: "2025-08-26 14:00",
		County:           "Los Angeles",
	})
	assert.ErrorIs(t, err, ErrNotificationFailed)
	assert.Equal(t, int64(1), id)

	// The record survives the failed send, marked unnotified.
	reqs, listErr := svc.ListRequests()
	require.NoError(t, listErr)
	require.Len(t, reqs, 1)
	assert.False(t, reqs[0].Notified)
	assert.Equal(t, "records@lafd.example", reqs[0].CountyEmail)
}

func TestCreateRequestUnknownSubmitter(t *testing.T) {
	// Tokens verify statelessly, so the subject may not exist in the store.
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewRequestService(db, newTestDirectory(t), sender, NewUserService(db))

	id, err := svc.CreateRequest(context.Background(), IntakeInput{
		Token:            "raw-token",
		Username:         "ghost",
		IncidentAddress:  "123 Main St",
		IncidentDatetime: "2025-08-26 14:00",
		County:           "Los Angeles",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	reqs, err := svc.ListRequests()
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "ghost", reqs[0].CreatedBy)
	assert.Empty(t, reqs[0].RequesterEmail)
}

func TestGetRecentRequestsOrderAndClamp(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewRequestService(db, newTestDirectory(t), sender, NewUserService(db))

	for i := 0; i < 3; i++ {
		_, err := svc.CreateRequest(context.Background(), IntakeInput{
			Token:            "raw-token",
			Username:         "alice",
			IncidentAddress:  "123 Main St",
			IncidentDatetime: "2025-08-26 14:00",
			County:           "Los Angeles",
		})
		require.NoError(t, err)
	}

	reqs, err := svc.GetRecentRequests(2)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, int64(3), reqs[0].ID)
	assert.Equal(t, int64(2), reqs[1].ID)

	reqs, err = svc.GetRecentRequests(0)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}
