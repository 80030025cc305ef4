package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/usecase/statement"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
)

// StatementController handles bank statement upload endpoints.
type StatementController struct {
	previewUseCase *statement.PreviewStatementUseCase
	importUseCase  *statement.ImportStatementUseCase
}

// NewStatementController creates a new statement controller instance.
func NewStatementController(
	previewUseCase *statement.PreviewStatementUseCase,
	importUseCase *statement.ImportStatementUseCase,
) *StatementController {
	return &StatementController{
		previewUseCase: previewUseCase,
		importUseCase:  importUseCase,
	}
}

// Preview handles POST /statements/preview requests.
func (c *StatementController) Preview(ctx *gin.Context) {
	_, content, ok := readUpload(ctx, "file")
	if !ok {
		return
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), statement.PreviewStatementInput{
		Session: middleware.GetSession(ctx),
		Content: content,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementPreviewResponse(output))
}

// Import handles POST /statements/import requests.
func (c *StatementController) Import(ctx *gin.Context) {
	_, content, ok := readUpload(ctx, "file")
	if !ok {
		return
	}

	backup := false
	if raw := ctx.PostForm("backup"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidRequest, "Invalid backup flag: "+raw)
			return
		}
		backup = parsed
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), statement.ImportStatementInput{
		Session: middleware.GetSession(ctx),
		Content: content,
		Mode:    statement.ImportMode(ctx.PostForm("mode")),
		Backup:  backup,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Written {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToStatementImportResponse(output))
}
