// Command glidepath-api serves the projection engine over HTTP.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/khoward/glidepath/internal/api"
	"github.com/khoward/glidepath/internal/calculation"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := calculation.NewProjectionEngine()
	router := api.NewRouter(engine)

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting glidepath API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
