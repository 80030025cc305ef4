package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/application/usecase/reconciliation"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// ReconciliationController handles reconciliation endpoints.
type ReconciliationController struct {
	unreconciledUseCase *reconciliation.ListUnreconciledUseCase
	manualLinkUseCase   *reconciliation.ManualLinkUseCase
	invoicesUseCase     *reconciliation.ReconcileInvoicesUseCase
}

// NewReconciliationController creates a new reconciliation controller instance.
func NewReconciliationController(
	unreconciledUseCase *reconciliation.ListUnreconciledUseCase,
	manualLinkUseCase *reconciliation.ManualLinkUseCase,
	invoicesUseCase *reconciliation.ReconcileInvoicesUseCase,
) *ReconciliationController {
	return &ReconciliationController{
		unreconciledUseCase: unreconciledUseCase,
		manualLinkUseCase:   manualLinkUseCase,
		invoicesUseCase:     invoicesUseCase,
	}
}

// Unreconciled handles GET /reconciliation/unreconciled requests.
func (c *ReconciliationController) Unreconciled(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	output, err := c.unreconciledUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.TransactionTable("nao_conciliadas", output.Transactions))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions, output.Report))
}

// Link handles POST /reconciliation/link requests.
func (c *ReconciliationController) Link(ctx *gin.Context) {
	var req dto.ManualLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	tx, err := c.manualLinkUseCase.Execute(ctx.Request.Context(), reconciliation.ManualLinkInput{
		Session:    middleware.GetSession(ctx),
		ExternalID: req.ExternalID,
		Reference:  req.Reference,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// Invoices handles POST /reconciliation/invoices requests. The document comes from a
// multipart file, a JSON body of extracted lines, or the configured default document.
func (c *ReconciliationController) Invoices(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	input := reconciliation.ReconcileInvoicesInput{
		Session: middleware.GetSession(ctx),
	}

	switch ctx.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		name, content, ok := readUpload(ctx, "file")
		if !ok {
			return
		}
		input.Document = &adapter.Document{Name: name, Content: content}
	case gin.MIMEJSON:
		if ctx.Request.ContentLength == 0 {
			break
		}
		var req dto.ReconcileInvoicesRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
			return
		}
		lines, err := toDocumentLines(req.Lines)
		if err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidRequest, err.Error())
			return
		}
		input.Lines = lines
	}

	output, err := c.invoicesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON && output.Automatic {
		respondTable(ctx, format, dto.ReconciliationTable(output.Records))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToReconcileInvoicesResponse(output))
}

func toDocumentLines(in []dto.InvoiceLineRequest) ([]valueobject.DocumentLine, error) {
	lines := make([]valueobject.DocumentLine, 0, len(in))
	for i, l := range in {
		value, err := valueobject.ParseBRL(l.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value %q", i+1, l.Value)
		}
		line := valueobject.DocumentLine{DocumentNumber: l.DocumentNumber, Value: value}
		if l.Date != "" {
			date, err := dto.ParseDate(l.Date)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid date %q", i+1, l.Date)
			}
			line.Date = &date
		}
		lines = append(lines, line)
	}
	return lines, nil
}
