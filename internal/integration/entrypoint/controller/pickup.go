package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/usecase/pickup"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// PickupController handles pickup order endpoints.
type PickupController struct {
	createUseCase       *pickup.CreatePickupUseCase
	listUseCase         *pickup.ListPickupsUseCase
	updateStatusUseCase *pickup.UpdatePickupStatusUseCase
}

// NewPickupController creates a new pickup controller instance.
func NewPickupController(
	createUseCase *pickup.CreatePickupUseCase,
	listUseCase *pickup.ListPickupsUseCase,
	updateStatusUseCase *pickup.UpdatePickupStatusUseCase,
) *PickupController {
	return &PickupController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		updateStatusUseCase: updateStatusUseCase,
	}
}

// Create handles POST /pickups requests.
func (c *PickupController) Create(ctx *gin.Context) {
	var req dto.CreatePickupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodePickupMissingFields),
		})
		return
	}

	pickupDate, err := dto.ParseDate(req.PickupDate)
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidRequest, "Invalid pickup_date, expected YYYY-MM-DD or DD/MM/YYYY")
		return
	}

	order, err := c.createUseCase.Execute(ctx.Request.Context(), pickup.CreatePickupInput{
		Session:     middleware.GetSession(ctx),
		PickupDate:  pickupDate,
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
		Sender:      req.Sender.ToEntity(),
		Receiver:    req.Receiver.ToEntity(),
		GoodsType:   entity.GoodsType(req.GoodsType),
		Volumes:     req.Volumes,
		WeightKg:    decimal.NewFromFloat(req.WeightKg),
		GoodsValue:  decimal.NewFromFloat(req.GoodsValue),
		Notes:       req.Notes,
		Urgent:      req.Urgent,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPickupResponse(order))
}

// List handles GET /pickups requests.
func (c *PickupController) List(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), pickup.ListPickupsInput{
		Session:    middleware.GetSession(ctx),
		Status:     entity.PickupStatus(ctx.Query("status")),
		OriginCity: ctx.Query("origin_city"),
		Period:     pickup.Period(ctx.DefaultQuery("period", string(pickup.PeriodAll))),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.PickupTable(output.Orders))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPickupListResponse(output))
}

// UpdateStatus handles PATCH /pickups/:number/status requests.
func (c *PickupController) UpdateStatus(ctx *gin.Context) {
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil || number <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid pickup number",
			Code:  string(domainerror.ErrCodePickupNotFound),
		})
		return
	}

	var req dto.UpdatePickupStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPickupStatus),
		})
		return
	}

	order, err := c.updateStatusUseCase.Execute(ctx.Request.Context(), pickup.UpdatePickupStatusInput{
		Session: middleware.GetSession(ctx),
		Number:  number,
		Status:  entity.PickupStatus(req.Status),
		Driver:  req.Driver,
		Vehicle: req.Vehicle,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPickupResponse(order))
}
