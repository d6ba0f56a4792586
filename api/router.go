package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-scanner/config"
	"github.com/gcbaptista/go-ats-scanner/services"
)

// NewRouter builds a gin engine with the standard middleware chain and all routes.
func NewRouter(engine services.AnalysisEngine, server config.ServerSettings, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if server.Mode != "" {
		gin.SetMode(server.Mode)
	}

	router := gin.New()
	router.MaxMultipartMemory = server.MaxBodyBytes
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggerMiddleware(logger),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(server.MaxBodyBytes),
	)

	SetupRoutes(router, engine, logger)
	return router
}
