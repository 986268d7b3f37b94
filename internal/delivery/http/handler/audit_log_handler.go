package handler

import (
	"net/http"

	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// List returns the audit trail, newest first (admin)
// @Summary List audit logs
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	logs, total, err := h.auditLogUsecase.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.Paginated(w, logs, r.URL.Path, page, perPage, total)
}
