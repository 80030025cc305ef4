package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/usecase/sync"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
)

// SyncController handles the database mirror endpoint.
type SyncController struct {
	syncUseCase *sync.SyncDatabaseUseCase
}

// NewSyncController creates a new sync controller instance.
func NewSyncController(syncUseCase *sync.SyncDatabaseUseCase) *SyncController {
	return &SyncController{syncUseCase: syncUseCase}
}

// Sync handles POST /sync requests.
func (c *SyncController) Sync(ctx *gin.Context) {
	output, err := c.syncUseCase.Execute(ctx.Request.Context(), middleware.GetSession(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SyncResponse{
		Shipments:    output.Shipments,
		Transactions: output.Transactions,
		Warnings:     dto.Warnings(output.Report),
	})
}
