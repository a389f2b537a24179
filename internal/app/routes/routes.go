package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/controllers"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	batchController *controllers.BatchController,
	universityController *controllers.UniversityController,
	applicationController *controllers.ApplicationController,
	scholarshipController *controllers.ScholarshipController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// --- Public routes ---
	v1.GET("/batches/current", batchController.GetCurrentBatch)
	v1.GET("/universities", universityController.ListUniversities)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		applications := authenticated.Group("/applications")
		{
			applications.GET("", applicationController.ListApplications)
			applications.POST("", applicationController.CreateApplication)
			applications.GET("/:id", applicationController.GetApplication)
			applications.PUT("/:id", applicationController.UpdateApplication)
			applications.GET("/:id/logs", applicationController.GetApplicationLogs)
			applications.POST("/:id/withdraw", applicationController.WithdrawApplication)
		}

		scholarships := authenticated.Group("/scholarships")
		{
			scholarships.GET("/mine", scholarshipController.ListMyScholarships)
			scholarships.PUT("/:id/bank-details", scholarshipController.SubmitBankDetails)
			scholarships.POST("/:id/contract", scholarshipController.UploadContract)
			scholarships.POST("/:id/withdraw", scholarshipController.WithdrawScholarship)
		}
	}
}
