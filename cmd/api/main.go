package main

import (
	"os"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/server"
)

// @title Waqfisa Student Portal API
// @version 1.0
// @description Scholarship application and award service for the Waqfisa program

// @contact.name API Support
// @contact.email support@waqfisa.bh

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
