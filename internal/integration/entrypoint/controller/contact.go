package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/usecase/contact"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// ContactController handles address book endpoints.
type ContactController struct {
	listUseCase   *contact.ListContactsUseCase
	lookupUseCase *contact.LookupContactUseCase
	createUseCase *contact.CreateContactUseCase
	updateUseCase *contact.UpdateContactUseCase
	deleteUseCase *contact.DeleteContactUseCase
	importUseCase *contact.ImportContactsUseCase
}

// NewContactController creates a new contact controller instance.
func NewContactController(
	listUseCase *contact.ListContactsUseCase,
	lookupUseCase *contact.LookupContactUseCase,
	createUseCase *contact.CreateContactUseCase,
	updateUseCase *contact.UpdateContactUseCase,
	deleteUseCase *contact.DeleteContactUseCase,
	importUseCase *contact.ImportContactsUseCase,
) *ContactController {
	return &ContactController{
		listUseCase:   listUseCase,
		lookupUseCase: lookupUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		importUseCase: importUseCase,
	}
}

// List handles GET /contacts requests.
func (c *ContactController) List(ctx *gin.Context) {
	format, ok := exportFormat(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), contact.ListContactsInput{
		Session:      middleware.GetSession(ctx),
		Name:         ctx.Query("name"),
		City:         ctx.Query("city"),
		CompleteOnly: ctx.Query("complete_only") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	if format != export.FormatJSON {
		respondTable(ctx, format, dto.ContactTable(output.Contacts))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToContactListResponse(output))
}

// Lookup handles GET /contacts/lookup requests.
func (c *ContactController) Lookup(ctx *gin.Context) {
	output, err := c.lookupUseCase.Execute(ctx.Request.Context(), ctx.Query("name"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LookupContactResponse{
		Contact:   dto.ToContactResponse(output.Contact),
		MatchType: output.MatchType,
	})
}

// Create handles POST /contacts requests.
func (c *ContactController) Create(ctx *gin.Context) {
	input, ok := bindContact(ctx)
	if !ok {
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToContactResponse(created))
}

// Update handles PUT /contacts/:id requests.
func (c *ContactController) Update(ctx *gin.Context) {
	input, ok := bindContact(ctx)
	if !ok {
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), ctx.Param("id"), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToContactResponse(updated))
}

// Delete handles DELETE /contacts/:id requests.
func (c *ContactController) Delete(ctx *gin.Context) {
	err := c.deleteUseCase.Execute(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Import handles POST /contacts/import requests: multipart file, optional mode and
// columns[<field>]=<file column> mappings.
func (c *ContactController) Import(ctx *gin.Context) {
	_, content, ok := readUpload(ctx, "file")
	if !ok {
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), contact.ImportContactsInput{
		Session: middleware.GetSession(ctx),
		Content: content,
		Mode:    contact.ImportMode(ctx.PostForm("mode")),
		Columns: ctx.PostFormMap("columns"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Written {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToContactImportResponse(output))
}

func bindContact(ctx *gin.Context) (contact.ContactInput, bool) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeContactMissingFields),
		})
		return contact.ContactInput{}, false
	}
	return contact.ContactInput{
		Session: middleware.GetSession(ctx),
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		City:    req.City,
		Note:    req.Note,
	}, true
}
