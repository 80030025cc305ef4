// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// maxUploadBytes caps statement and invoice uploads.
const maxUploadBytes = 10 << 20

// handleError maps domain errors to HTTP responses. Unknown errors become a 500.
func handleError(ctx *gin.Context, err error) {
	var (
		txnErr  *domainerror.TransactionError
		ldgErr  *domainerror.LedgerError
		recErr  *domainerror.ReconciliationError
		clsErr  *domainerror.ClassificationError
		opsErr  *domainerror.OperationsError
		emlErr  *domainerror.EmailError
		status  int
		code    string
		message string
	)

	switch {
	case errors.As(err, &txnErr):
		status, code, message = getStatusCodeForTransactionError(txnErr.Code), string(txnErr.Code), txnErr.Message
	case errors.As(err, &recErr):
		status, code, message = getStatusCodeForReconciliationError(recErr.Code), string(recErr.Code), recErr.Message
	case errors.As(err, &clsErr):
		status, code, message = getStatusCodeForClassificationError(clsErr.Code), string(clsErr.Code), clsErr.Message
	case errors.As(err, &opsErr):
		status, code, message = getStatusCodeForOperationsError(opsErr.Code), string(opsErr.Code), opsErr.Message
	case errors.As(err, &ldgErr):
		status, code, message = getStatusCodeForLedgerError(ldgErr.Code), string(ldgErr.Code), ldgErr.Message
	case errors.As(err, &emlErr):
		status, code, message = http.StatusBadGateway, string(emlErr.Code), emlErr.Message
	default:
		session := middleware.GetSession(ctx)
		slog.Error("request failed",
			"path", ctx.FullPath(),
			"operator", session.Operator,
			"request_id", session.RequestID,
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	if status >= http.StatusInternalServerError {
		session := middleware.GetSession(ctx)
		slog.Error("request failed",
			"path", ctx.FullPath(),
			"code", code,
			"operator", session.Operator,
			"request_id", session.RequestID,
			"error", err,
		)
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAlreadyReconciled:
		return http.StatusConflict
	case domainerror.ErrCodeEmptyReference,
		domainerror.ErrCodeMissingExternalID,
		domainerror.ErrCodeEmptyStatement,
		domainerror.ErrCodeInvalidImportMode,
		domainerror.ErrCodeEmptyClassification,
		domainerror.ErrCodeInvalidTransactionFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForLedgerError maps ledger error codes to HTTP status codes.
func getStatusCodeForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeSourceUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeMalformedRecord,
		domainerror.ErrCodeMissingColumn:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForReconciliationError maps reconciliation error codes to HTTP status codes.
func getStatusCodeForReconciliationError(code domainerror.ReconciliationErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvoiceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnsupportedDocument:
		return http.StatusUnsupportedMediaType
	case domainerror.ErrCodeNoDocumentLines,
		domainerror.ErrCodeInvalidDateRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForClassificationError maps classification error codes to HTTP status codes.
func getStatusCodeForClassificationError(code domainerror.ClassificationErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyKeyword:
		return http.StatusBadRequest
	case domainerror.ErrCodeAdvisorUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeAdvisorRequestFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForOperationsError maps quote, pickup and contact error codes to HTTP status codes.
func getStatusCodeForOperationsError(code domainerror.OperationsErrorCode) int {
	switch code {
	case domainerror.ErrCodePickupNotFound,
		domainerror.ErrCodeContactNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeQuoteMissingFields,
		domainerror.ErrCodeInvalidDistance,
		domainerror.ErrCodeInvalidWeight,
		domainerror.ErrCodePickupMissingFields,
		domainerror.ErrCodeInvalidPickupStatus,
		domainerror.ErrCodeInvalidCargoType,
		domainerror.ErrCodeContactMissingFields,
		domainerror.ErrCodeContactImportColumns,
		domainerror.ErrCodeContactImportMode:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// badRequest writes a 400 response with a request error code.
func badRequest(ctx *gin.Context, code domainerror.RequestErrorCode, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// exportFormat reads the format query parameter. ok is false when a response was already written.
func exportFormat(ctx *gin.Context) (export.Format, bool) {
	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidExportFormat, "Unsupported export format: "+ctx.Query("format"))
		return export.FormatJSON, false
	}
	return format, true
}

// respondTable writes a table as a downloadable CSV or XLSX file.
func respondTable(ctx *gin.Context, format export.Format, table export.Table) {
	content, err := export.Encode(format, table)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename="+table.FileName(format))
	ctx.Data(http.StatusOK, format.ContentType(), content)
}

// readUpload reads the named multipart file. ok is false when a response was already written.
func readUpload(ctx *gin.Context, field string) (name string, content []byte, ok bool) {
	header, err := ctx.FormFile(field)
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeMissingFile, "File field '"+field+"' not found or invalid")
		return "", nil, false
	}
	if header.Size > maxUploadBytes {
		badRequest(ctx, domainerror.ErrCodeInvalidRequest, "File exceeds the 10 MB upload limit")
		return "", nil, false
	}

	file, err := header.Open()
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeMissingFile, "Could not open the uploaded file")
		return "", nil, false
	}
	defer file.Close()

	content, err = io.ReadAll(file)
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeMissingFile, "Could not read the uploaded file")
		return "", nil, false
	}
	return header.Filename, content, true
}

// splitList splits a comma separated query value, dropping blanks.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
