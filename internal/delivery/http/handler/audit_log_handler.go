package handler

import (
	"net/http"

	"patient-records-api/internal/usecase"
	"patient-records-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// ListAuditLogs returns the full audit trail, newest rows last
func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.ListAuditLogs(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.JSON(w, http.StatusOK, logs)
}
