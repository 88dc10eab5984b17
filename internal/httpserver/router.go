package httpserver

import (
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CatalogSvc == nil || deps.AuthSvc == nil || deps.SubscribeSvc == nil {
		return nil, errors.New("httpserver: missing service dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if deps.UploadDir != "" {
		router.Static("/uploads", deps.UploadDir)
	}

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.CatalogSvc, logger))
		api.POST("/products",
			requireAuth(deps.AuthSvc),
			requireAdmin(),
			createProductHandler(deps.CatalogSvc, deps.Uploads, logger),
		)

		api.POST("/auth/login", loginHandler(deps.AuthSvc))
		api.POST("/auth/register", registerHandler(deps.AuthSvc))

		api.POST("/subscribe", subscribeHandler(deps.SubscribeSvc, logger))
	}

	return router, nil
}
