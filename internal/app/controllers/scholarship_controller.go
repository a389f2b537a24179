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

// ScholarshipController handles scholarship-related operations
type ScholarshipController struct {
	scholarshipService services.ScholarshipService
}

// NewScholarshipController creates a new ScholarshipController
func NewScholarshipController(scholarshipService services.ScholarshipService) *ScholarshipController {
	return &ScholarshipController{scholarshipService: scholarshipService}
}

// ListMyScholarships lists the student's scholarships
// @Summary List my scholarships
// @Description Lists the authenticated student's scholarships, newest first
// @Tags scholarships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Scholarship}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /scholarships/mine [get]
func (c *ScholarshipController) ListMyScholarships(ctx *gin.Context) {
	scholarships, err := c.scholarshipService.Mine(ctx, middleware.StudentCPR(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(scholarships))
}

// SubmitBankDetails records the disbursement bank account
// @Summary Submit bank details
// @Description Records the bank name, IBAN and IBAN letter for disbursement
// @Tags scholarships
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Scholarship}
// @Failure 400 {object} dto.ErrorResponse "Invalid IBAN or missing letter"
// @Failure 403 {object} dto.ErrorResponse "Scholarship locked"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Router /scholarships/{id}/bank-details [put]
func (c *ScholarshipController) SubmitBankDetails(ctx *gin.Context) {
	id, ok := scholarshipID(ctx)
	if !ok {
		return
	}

	var req dto.BankDetailsRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	scholarship, err := c.scholarshipService.SubmitBankDetails(
		ctx, middleware.StudentCPR(ctx), id, &req, formFile(ctx, models.DocIBANLetter))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(scholarship))
}

// UploadContract stores the signed scholarship contract
// @Summary Upload the signed contract
// @Description Stores the signed contract document; bank details must already be on file
// @Tags scholarships
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Scholarship}
// @Failure 400 {object} dto.ErrorResponse "Missing contract or bank details"
// @Failure 403 {object} dto.ErrorResponse "Scholarship locked"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Router /scholarships/{id}/contract [post]
func (c *ScholarshipController) UploadContract(ctx *gin.Context) {
	id, ok := scholarshipID(ctx)
	if !ok {
		return
	}

	var req dto.ContractRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	scholarship, err := c.scholarshipService.UploadContract(
		ctx, middleware.StudentCPR(ctx), id, req.Version, formFile(ctx, models.DocSignedContract))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(scholarship))
}

// WithdrawScholarship declines the award
// @Summary Withdraw a scholarship
// @Description Irreversibly declines the scholarship award
// @Tags scholarships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholarship ID" Format(int64) minimum(1)
// @Param request body dto.WithdrawRequest true "Version precondition"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Scholarship locked"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Router /scholarships/{id}/withdraw [post]
func (c *ScholarshipController) WithdrawScholarship(ctx *gin.Context) {
	id, ok := scholarshipID(ctx)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	if err := c.scholarshipService.Withdraw(ctx, middleware.StudentCPR(ctx), id, req.Version); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Scholarship withdrawn"}))
}

// scholarshipID parses the :id path parameter.
func scholarshipID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid scholarship ID").
			WithDetails("Scholarship ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// formFile returns the named file part, or nil when absent.
func formFile(ctx *gin.Context, name string) *multipart.FileHeader {
	file, err := ctx.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}
