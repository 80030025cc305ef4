package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/usecase/shipment"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// ShipmentController handles shipment ledger endpoints.
type ShipmentController struct {
	searchUseCase    *shipment.SearchShipmentsUseCase
	dashboardUseCase *shipment.GetDashboardUseCase
	refreshUseCase   *shipment.RefreshLedgerUseCase
}

// NewShipmentController creates a new shipment controller instance.
func NewShipmentController(
	searchUseCase *shipment.SearchShipmentsUseCase,
	dashboardUseCase *shipment.GetDashboardUseCase,
	refreshUseCase *shipment.RefreshLedgerUseCase,
) *ShipmentController {
	return &ShipmentController{
		searchUseCase:    searchUseCase,
		dashboardUseCase: dashboardUseCase,
		refreshUseCase:   refreshUseCase,
	}
}

// Search handles GET /shipments/search requests.
func (c *ShipmentController) Search(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	output, err := c.searchUseCase.Execute(ctx.Request.Context(), shipment.SearchShipmentsInput{
		Session: middleware.GetSession(ctx),
		Query:   ctx.Query("q"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.ShipmentTable(output.Shipments))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToShipmentSearchResponse(output))
}

// Dashboard handles GET /shipments/dashboard requests.
func (c *ShipmentController) Dashboard(ctx *gin.Context) {
	output, err := c.dashboardUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// Refresh handles POST /shipments/refresh requests.
func (c *ShipmentController) Refresh(ctx *gin.Context) {
	output, err := c.refreshUseCase.Execute(ctx.Request.Context(), middleware.GetSession(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshLedgerResponse{Invalidated: output.Invalidated})
}
