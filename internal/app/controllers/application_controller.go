package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models/dto"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/services"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/middleware"
)

// documentSlots are the multipart part names accepted for single documents.
var documentSlots = []string{
	models.DocCPR,
	models.DocTranscript,
	models.DocSchoolCertificate,
	models.DocUniversityCertificate,
	models.DocAcceptanceLetter,
	models.DocTOEFLIELTS,
	models.DocGuardianCPR,
	models.DocIncome,
}

// ApplicationController handles application-related operations
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// ListApplications lists the student's applications
// @Summary List my applications
// @Description Lists the authenticated student's applications, best status first
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Application}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [get]
func (c *ApplicationController) ListApplications(ctx *gin.Context) {
	apps, err := c.applicationService.List(ctx, middleware.StudentCPR(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(apps))
}

// GetApplication retrieves one application
// @Summary Get an application
// @Description Retrieves one of the authenticated student's applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, ok := applicationID(ctx)
	if !ok {
		return
	}

	app, err := c.applicationService.Get(ctx, middleware.StudentCPR(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(app))
}

// GetApplicationLogs retrieves the audit trail of an application
// @Summary Get application audit trail
// @Description Retrieves the change log of one application, oldest first
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.AuditLog}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/logs [get]
func (c *ApplicationController) GetApplicationLogs(ctx *gin.Context) {
	id, ok := applicationID(ctx)
	if !ok {
		return
	}

	logs, err := c.applicationService.Logs(ctx, middleware.StudentCPR(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(logs))
}

// CreateApplication submits a new application
// @Summary Submit an application
// @Description Submits a new application with its documents into the current batch
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Application window closed"
// @Failure 409 {object} dto.ErrorResponse "Active application already exists"
// @Router /applications [post]
func (c *ApplicationController) CreateApplication(ctx *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	docs, proofs := collectDocuments(ctx)
	app, err := c.applicationService.Create(ctx, middleware.StudentCPR(ctx), &req, docs, proofs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(app))
}

// UpdateApplication edits an existing application
// @Summary Edit an application
// @Description Edits an application's fields and documents under the version it last read
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 403 {object} dto.ErrorResponse "Editing window closed or application locked"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Router /applications/{id} [put]
func (c *ApplicationController) UpdateApplication(ctx *gin.Context) {
	id, ok := applicationID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	docs, proofs := collectDocuments(ctx)
	app, err := c.applicationService.Update(ctx, middleware.StudentCPR(ctx), id, &req, docs, proofs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(app))
}

// WithdrawApplication withdraws an application
// @Summary Withdraw an application
// @Description Irreversibly withdraws an application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Param request body dto.WithdrawRequest true "Version precondition"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Application locked"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Router /applications/{id}/withdraw [post]
func (c *ApplicationController) WithdrawApplication(ctx *gin.Context) {
	id, ok := applicationID(ctx)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	if err := c.applicationService.Withdraw(ctx, middleware.StudentCPR(ctx), id, req.Version); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Application withdrawn"}))
}

// applicationID parses the :id path parameter.
func applicationID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID").
			WithDetails("Application ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// collectDocuments extracts the document file parts: one file per known slot
// name, plus every income-proof part.
func collectDocuments(ctx *gin.Context) (map[string]*multipart.FileHeader, []*multipart.FileHeader) {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	docs := map[string]*multipart.FileHeader{}
	for _, slot := range documentSlots {
		if files := form.File[slot]; len(files) > 0 {
			docs[slot] = files[0]
		}
	}
	return docs, form.File[models.DocIncomeProof]
}
