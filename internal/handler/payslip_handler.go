package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paymax/internal/domain"
	"paymax/internal/export"
	"paymax/internal/service"
)

// PayslipHandler handles payslip parsing and retrieval endpoints.
type PayslipHandler struct {
	payslipService service.PayslipService
}

// NewPayslipHandler creates a new PayslipHandler.
func NewPayslipHandler(payslipService service.PayslipService) *PayslipHandler {
	return &PayslipHandler{payslipService: payslipService}
}

// Parse handles POST /api/v1/payslips/parse. The document arrives as a
// multipart "file" field; an optional "hint" field biases parser selection.
func (h *PayslipHandler) Parse(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_UPLOAD", "uploaded file could not be read")
		return
	}

	hint, err := domain.ParseHintFromString(c.PostForm("hint"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_HINT", "hint must be one of: auto, military, corporate")
		return
	}

	result, err := h.payslipService.ProcessUpload(c.Request.Context(), data, hint)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// List handles GET /api/v1/payslips
func (h *PayslipHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	slips, total, err := h.payslipService.List(c.Request.Context(), limit, offset)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, slips, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/payslips/:id
func (h *PayslipHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	slip, err := h.payslipService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, slip)
}

// Export handles GET /api/v1/payslips/export?format=csv|xlsx
func (h *PayslipHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	// Export is unpaginated; pull everything in one page.
	slips, _, err := h.payslipService.List(c.Request.Context(), 10000, 0)
	if err != nil {
		HandleError(c, err)
		return
	}

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename("payslips", "xlsx")+`"`)
		if err := export.WriteXLSX(c.Writer, slips); err != nil {
			HandleError(c, err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename("payslips", "csv")+`"`)

	w := export.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WritePayslips(slips); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
	}
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if s := c.Query("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
