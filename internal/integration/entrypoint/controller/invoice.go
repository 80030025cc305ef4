package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/usecase/invoice"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// InvoiceController handles invoice endpoints.
type InvoiceController struct {
	listUseCase   *invoice.ListInvoicesUseCase
	detailUseCase *invoice.GetInvoiceDetailUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	listUseCase *invoice.ListInvoicesUseCase,
	detailUseCase *invoice.GetInvoiceDetailUseCase,
) *InvoiceController {
	return &InvoiceController{
		listUseCase:   listUseCase,
		detailUseCase: detailUseCase,
	}
}

// List handles GET /invoices requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	var from, to *string
	if v, ok := ctx.GetQuery("due_from"); ok && v != "" {
		from = &v
	}
	if v, ok := ctx.GetQuery("due_to"); ok && v != "" {
		to = &v
	}
	dueDate, err := dto.DueDateRange(from, to)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid due date, expected YYYY-MM-DD or DD/MM/YYYY",
			Code:  string(domainerror.ErrCodeInvalidDateRange),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), invoice.ListInvoicesInput{
		Session: middleware.GetSession(ctx),
		DueDate: dueDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.InvoiceTable(output.Invoices))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output))
}

// Detail handles GET /invoices/:number requests.
func (c *InvoiceController) Detail(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	output, err := c.detailUseCase.Execute(ctx.Request.Context(), invoice.GetInvoiceDetailInput{
		Session:       middleware.GetSession(ctx),
		InvoiceNumber: ctx.Param("number"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.InvoiceDetailTable(output))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInvoiceDetailResponse(output))
}
