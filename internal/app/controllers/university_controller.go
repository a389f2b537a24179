package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models/dto"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/services"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/middleware"
)

// UniversityController handles university catalog operations
type UniversityController struct {
	universityService services.UniversityService
}

// NewUniversityController creates a new UniversityController
func NewUniversityController(universityService services.UniversityService) *UniversityController {
	return &UniversityController{universityService: universityService}
}

// ListUniversities lists all universities
// @Summary List universities
// @Description Lists all universities ordered by name
// @Tags universities
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.University}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /universities [get]
func (c *UniversityController) ListUniversities(ctx *gin.Context) {
	universities, err := c.universityService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(universities))
}
