package main

import (
	"log"
	"net/http"

	"asset-inventory-api/internal"
	"asset-inventory-api/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	srv := internal.NewServer(cfg.DBDSN, cfg)

	log.Println("Starting asset inventory API server...")
	log.Printf("JWT Issuer: %s", cfg.JWTIssuer)
	log.Printf("JWT Audience: %s", cfg.JWTAudience)
	log.Printf("JWT Expiry: %v", cfg.JWTExpiry)
	log.Printf("Listening on %s", cfg.ListenAddr)

	log.Fatal(http.ListenAndServe(cfg.ListenAddr, srv.Router))
}
