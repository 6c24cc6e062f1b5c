// Package api assembles the REST service over the projection engine.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khoward/glidepath/internal/api/handlers"
	"github.com/khoward/glidepath/internal/api/middleware"
	"github.com/khoward/glidepath/internal/calculation"
	"github.com/khoward/glidepath/internal/compare"
)

// NewRouter builds the gin router with all routes and middleware wired.
func NewRouter(engine *calculation.ProjectionEngine) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	projection := handlers.NewProjectionHandler(engine)
	comparison := handlers.NewCompareHandler(compare.NewEngine(engine))
	heir := handlers.NewHeirHandler()

	v1 := router.Group("/api/v1")
	{
		v1.POST("/project", projection.Run)
		v1.POST("/compare", comparison.Run)
		v1.POST("/heir", heir.Run)
	}

	return router
}
