package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paymax/internal/domain"
	"paymax/internal/handler"
	"paymax/internal/pipeline"
	"paymax/internal/router"
	"paymax/mocks"
)

func setupRouter(svc *mocks.MockPayslipService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.Setup(
		handler.NewPayslipHandler(svc),
		handler.NewDiagnosticsHandler(svc),
		handler.NewHealthHandler(nil),
		nil,
	)
}

func multipartUpload(t *testing.T, fields map[string]string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if fileContent != nil {
		fw, err := mw.CreateFormFile("file", "payslip.pdf")
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestParse_Success(t *testing.T) {
	svc := new(mocks.MockPayslipService)
	svc.On("ProcessUpload", mock.Anything, []byte("pdfbytes"), domain.HintMilitary).
		Return(&pipeline.Result{
			Confidence: domain.ConfidenceHigh,
			ParserName: "military",
			State:      pipeline.StateParsed,
			DocumentID: "abc",
		}, nil)

	body, contentType := multipartUpload(t, map[string]string{"hint": "military"}, []byte("pdfbytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestParse_MissingFile(t *testing.T) {
	svc := new(mocks.MockPayslipService)

	body, contentType := multipartUpload(t, map[string]string{"hint": "auto"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
	svc.AssertNotCalled(t, "ProcessUpload", mock.Anything, mock.Anything, mock.Anything)
}

func TestParse_InvalidHint(t *testing.T) {
	svc := new(mocks.MockPayslipService)

	body, contentType := multipartUpload(t, map[string]string{"hint": "naval"}, []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_HINT", resp.Error.Code)
}

func TestParse_DomainErrorsMapped(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrEmptyDocument, http.StatusBadRequest, "EMPTY_DOCUMENT"},
		{domain.ErrNoExtractableText, http.StatusUnprocessableEntity, "NO_EXTRACTABLE_TEXT"},
		{domain.ErrNoParserOutput, http.StatusUnprocessableEntity, "NO_PARSER_OUTPUT"},
		{domain.ErrProcessingTimeout, http.StatusGatewayTimeout, "PROCESSING_TIMEOUT"},
		{domain.ErrUnsupportedFile, http.StatusBadRequest, "UNSUPPORTED_FILE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			svc := new(mocks.MockPayslipService)
			svc.On("ProcessUpload", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			body, contentType := multipartUpload(t, nil, []byte("x"))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips/parse", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			setupRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			resp := decodeEnvelope(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestList_Paginated(t *testing.T) {
	svc := new(mocks.MockPayslipService)
	svc.On("List", mock.Anything, 10, 5).
		Return([]domain.Payslip{{Name: "John Doe"}}, 42, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips?limit=10&offset=5", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Limit)
	assert.Equal(t, 5, resp.Meta.Offset)
}

func TestList_DefaultsIgnoreBadPagination(t *testing.T) {
	svc := new(mocks.MockPayslipService)
	svc.On("List", mock.Anything, 20, 0).Return([]domain.Payslip{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips?limit=-3&offset=junk", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestGetByID(t *testing.T) {
	id := uuid.New()
	svc := new(mocks.MockPayslipService)
	svc.On("Get", mock.Anything, id).Return(&domain.Payslip{ID: id, Name: "John Doe"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips/"+id.String(), nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetByID_InvalidUUID(t *testing.T) {
	svc := new(mocks.MockPayslipService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetByID_NotFound(t *testing.T) {
	id := uuid.New()
	svc := new(mocks.MockPayslipService)
	svc.On("Get", mock.Anything, id).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips/"+id.String(), nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport_CSV(t *testing.T) {
	svc := new(mocks.MockPayslipService)
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Payslip{{Name: "John Doe", Year: 2024}}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips/export?format=csv", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "John Doe")
}

func TestExport_InvalidFormat(t *testing.T) {
	svc := new(mocks.MockPayslipService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payslips/export?format=pdf", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiagnostics_Attempts(t *testing.T) {
	svc := new(mocks.MockPayslipService)
	svc.On("Attempts").Return([]domain.ParseAttempt{{ParserName: "military", Success: true}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics/attempts", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "military")
}

func TestDiagnostics_UnknownComponentsBadMinCount(t *testing.T) {
	svc := new(mocks.MockPayslipService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics/unknown-components?min_count=zero", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	svc := new(mocks.MockPayslipService)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
