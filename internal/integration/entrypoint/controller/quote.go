package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/usecase/quote"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// QuoteController handles freight quote endpoints.
type QuoteController struct {
	calculateUseCase *quote.CalculateQuoteUseCase
	listUseCase      *quote.ListQuotesUseCase
}

// NewQuoteController creates a new quote controller instance.
func NewQuoteController(
	calculateUseCase *quote.CalculateQuoteUseCase,
	listUseCase *quote.ListQuotesUseCase,
) *QuoteController {
	return &QuoteController{
		calculateUseCase: calculateUseCase,
		listUseCase:      listUseCase,
	}
}

// Calculate handles POST /quotes requests. The quote is recorded only with ?save=true.
func (c *QuoteController) Calculate(ctx *gin.Context) {
	var req dto.CalculateQuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeQuoteMissingFields),
		})
		return
	}

	output, err := c.calculateUseCase.Execute(ctx.Request.Context(), quote.CalculateQuoteInput{
		Session:      middleware.GetSession(ctx),
		Client:       req.Client,
		Origin:       req.Origin,
		Destination:  req.Destination,
		DistanceKm:   decimal.NewFromFloat(req.DistanceKm),
		WeightKg:     decimal.NewFromFloat(req.WeightKg),
		CargoType:    req.CargoType,
		DeadlineDays: req.DeadlineDays,
		Notes:        req.Notes,
		Save:         ctx.Query("save") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Saved {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.CalculateQuoteResponse{
		Quote: dto.ToQuoteResponse(output.Quote),
		Saved: output.Saved,
	})
}

// List handles GET /quotes requests.
func (c *QuoteController) List(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	input := quote.ListQuotesInput{
		Session: middleware.GetSession(ctx),
		Status:  ctx.Query("status"),
		Client:  ctx.Query("client"),
	}
	if raw := ctx.Query("date"); raw != "" {
		date, err := dto.ParseDate(raw)
		if err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidRequest, "Invalid date, expected YYYY-MM-DD or DD/MM/YYYY")
			return
		}
		input.Date = &date
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.QuoteTable(output.Quotes))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToQuoteListResponse(output))
}
