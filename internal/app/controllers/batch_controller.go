package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models/dto"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/services"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/middleware"
)

// BatchController handles batch-related operations
type BatchController struct {
	batchService services.BatchService
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService services.BatchService) *BatchController {
	return &BatchController{batchService: batchService}
}

// GetCurrentBatch returns the current batch and its window gates
// @Summary Get the current batch
// @Description Returns the most recent batch together with the sign-up, application and editing gate booleans
// @Tags batches
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BatchStatusResponse}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /batches/current [get]
func (c *BatchController) GetCurrentBatch(ctx *gin.Context) {
	status, err := c.batchService.Current(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(status))
}
