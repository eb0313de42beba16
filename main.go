package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"restaurant-reservation/config"
	"restaurant-reservation/database"
	"restaurant-reservation/router"
	"restaurant-reservation/utils"
)

func main() {
	seed := flag.Bool("seed", false, "reload the demo dataset and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	cfg := config.Load()
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if *seed || cfg.SeedData {
		if err := database.Seed(db); err != nil {
			utils.ErrorLogger.Fatalf("Seed failed: %v", err)
		}
		if *seed {
			return
		}
	}

	r := router.SetupRouter(db, cfg)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
