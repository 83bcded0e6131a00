package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paymax/internal/service"
)

// DiagnosticsHandler exposes pipeline telemetry and abbreviation tracking.
type DiagnosticsHandler struct {
	payslipService service.PayslipService
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler.
func NewDiagnosticsHandler(payslipService service.PayslipService) *DiagnosticsHandler {
	return &DiagnosticsHandler{payslipService: payslipService}
}

// Attempts handles GET /api/v1/diagnostics/attempts. Attempts are returned
// oldest first, bounded by the telemetry ring capacity.
func (h *DiagnosticsHandler) Attempts(c *gin.Context) {
	RespondOK(c, h.payslipService.Attempts())
}

// UnknownComponents handles GET /api/v1/diagnostics/unknown-components.
// min_count filters to codes seen at least that many times.
func (h *DiagnosticsHandler) UnknownComponents(c *gin.Context) {
	minCount := 1
	if s := c.Query("min_count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			RespondError(c, http.StatusBadRequest, "INVALID_MIN_COUNT", "min_count must be a positive integer")
			return
		}
		minCount = n
	}
	RespondOK(c, h.payslipService.UnknownComponents(minCount))
}
