package converter

import (
	"testing"

	"patient-records-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogToResponse(t *testing.T) {
	userID := uint(7)
	log := &entity.AuditLog{
		ID:     3,
		UserID: &userID,
		Action: entity.AuditActionPatientUpdate,
		Metadata: entity.JSON{
			"entity":    "patient",
			"entity_id": "5",
		},
		User: &entity.User{ID: 7, Name: "Jane", Email: "jane@example.com"},
	}

	resp := AuditLogToResponse(log)
	require.NotNil(t, resp)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, entity.AuditActionPatientUpdate, resp.Action)
	assert.Equal(t, "patient", resp.Metadata["entity"])
	require.NotNil(t, resp.User)
	assert.Equal(t, "jane@example.com", resp.User.Email)
}

func TestAuditLogToResponse_NoActor(t *testing.T) {
	resp := AuditLogToResponse(&entity.AuditLog{ID: 1, Action: entity.AuditActionUserLogin})
	require.NotNil(t, resp)
	assert.Nil(t, resp.User)
}

func TestAuditLogToResponse_Nil(t *testing.T) {
	assert.Nil(t, AuditLogToResponse(nil))
}

func TestAuditLogsToResponses(t *testing.T) {
	logs := []entity.AuditLog{
		{ID: 1, Action: entity.AuditActionPatientCreate},
		{ID: 2, Action: entity.AuditActionPatientDelete},
	}

	responses := AuditLogsToResponses(logs)
	require.Len(t, responses, 2)
	assert.Equal(t, int64(1), responses[0].ID)
	assert.Equal(t, int64(2), responses[1].ID)
}
