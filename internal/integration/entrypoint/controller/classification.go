package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/usecase/classification"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
)

// ClassificationController handles rule table endpoints.
type ClassificationController struct {
	listRulesUseCase   *classification.ListRulesUseCase
	testKeywordUseCase *classification.TestKeywordUseCase
}

// NewClassificationController creates a new classification controller instance.
func NewClassificationController(
	listRulesUseCase *classification.ListRulesUseCase,
	testKeywordUseCase *classification.TestKeywordUseCase,
) *ClassificationController {
	return &ClassificationController{
		listRulesUseCase:   listRulesUseCase,
		testKeywordUseCase: testKeywordUseCase,
	}
}

// Rules handles GET /classification/rules requests.
func (c *ClassificationController) Rules(ctx *gin.Context) {
	output, err := c.listRulesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRulesResponse(output))
}

// Test handles POST /classification/test requests.
func (c *ClassificationController) Test(ctx *gin.Context) {
	var req dto.TestKeywordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyKeyword),
		})
		return
	}

	output, err := c.testKeywordUseCase.Execute(ctx.Request.Context(), classification.TestKeywordInput{
		Session: middleware.GetSession(ctx),
		Keyword: req.Keyword,
		Limit:   req.Limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTestKeywordResponse(output))
}
