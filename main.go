package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"reelcollator/src/config"
	movies "reelcollator/src/modules/movies/services"
	"reelcollator/src/routes"
	"reelcollator/src/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Println("⚠️  Could not load .env file")
		} else {
			log.Println("✅ Loaded .env file")
		}
	}

	host := os.Getenv("HOST")
	port := os.Getenv("APP_PORT")
	if host == "" {
		host = "0.0.0.0"
	}
	if port == "" {
		port = "2000"
	}

	// Setup Gin router
	router := gin.Default()
	// Enable CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// WebSocket route
	router.GET("/ws", services.WebSocketHandler)

	// Connect backing services
	config.ConnectDatabase()
	config.ConnectRedis()
	config.ConnectMinio()

	// Load the reference catalog before taking traffic
	if err := movies.RefreshCatalog(); err != nil {
		log.Printf("⚠️  Initial catalog load failed: %v", err)
	} else if err := movies.SyncCountries(); err != nil {
		log.Printf("⚠️  Initial country sync failed: %v", err)
	}

	// Register other routes
	routes.RegisterRoutes(router)
	services.SetupBackgroundJobs()

	// Start API and WebSocket server
	addr := fmt.Sprintf("%s:%s", host, port)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Could not start server: %v\n", err)
	}
}
