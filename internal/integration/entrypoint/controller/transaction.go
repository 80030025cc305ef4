package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/usecase/classification"
	"github.com/freight-backoffice/backend/internal/application/usecase/finance"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// TransactionController handles financial ledger endpoints.
type TransactionController struct {
	listUseCase    *finance.ListTransactionsUseCase
	summaryUseCase *finance.GetSummaryUseCase
	pendingUseCase *finance.ListPendingClassificationUseCase
	updateUseCase  *finance.UpdateClassificationUseCase
	suggestUseCase *classification.SuggestClassificationsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *finance.ListTransactionsUseCase,
	summaryUseCase *finance.GetSummaryUseCase,
	pendingUseCase *finance.ListPendingClassificationUseCase,
	updateUseCase *finance.UpdateClassificationUseCase,
	suggestUseCase *classification.SuggestClassificationsUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:    listUseCase,
		summaryUseCase: summaryUseCase,
		pendingUseCase: pendingUseCase,
		updateUseCase:  updateUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), finance.ListTransactionsInput{
		Session: middleware.GetSession(ctx),
		Filter:  parseTransactionFilter(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.TransactionTable("financas", output.Transactions))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions, output.Report))
}

// Summary handles GET /transactions/summary requests.
func (c *TransactionController) Summary(ctx *gin.Context) {
	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), finance.GetSummaryInput{
		Session: middleware.GetSession(ctx),
		Filter:  parseTransactionFilter(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(output))
}

// PendingClassification handles GET /transactions/pending-classification requests.
func (c *TransactionController) PendingClassification(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	output, err := c.pendingUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.TransactionTable("a_definir", output.Transactions))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions, output.Report))
}

// UpdateClassification handles PATCH /transactions/:id/classification requests.
func (c *TransactionController) UpdateClassification(ctx *gin.Context) {
	var req dto.UpdateClassificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	tx, err := c.updateUseCase.Execute(ctx.Request.Context(), finance.UpdateClassificationInput{
		Session:    middleware.GetSession(ctx),
		ExternalID: ctx.Param("id"),
		Category:   req.Category,
		CostCenter: req.CostCenter,
		Department: req.Department,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// Suggest handles POST /transactions/classification-suggestions requests.
func (c *TransactionController) Suggest(ctx *gin.Context) {
	var req dto.SuggestClassificationsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), classification.SuggestClassificationsInput{
		Session: middleware.GetSession(ctx),
		Limit:   req.Limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestClassificationsResponse(output))
}

func parseTransactionFilter(ctx *gin.Context) entity.TransactionFilter {
	return entity.TransactionFilter{
		Categories:  splitList(ctx.Query("category")),
		CostCenters: splitList(ctx.Query("cost_center")),
		Departments: splitList(ctx.Query("department")),
	}
}
