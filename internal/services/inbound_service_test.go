package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInbound(t *testing.T) {
	svc := NewInboundService(newTestDB(t))

	id, err := svc.Record("county@example.com", "RE: Fire Incident Report Request", "report attached", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	emails, err := svc.ListInbound()
	require.NoError(t, err)
	require.Len(t, emails, 1)

	e := emails[0]
	assert.Equal(t, "county@example.com", e.Sender)
	assert.Equal(t, "RE: Fire Incident Report Request", e.Subject)
	assert.True(t, e.HasAttachments)
	assert.Equal(t, 2, e.AttachmentCount)

	// Nothing is parsed or forwarded in this phase.
	assert.Nil(t, e.ParsedAddress)
	assert.Nil(t, e.ForwardedTo)
	assert.Nil(t, e.ForwardStatus)
}
