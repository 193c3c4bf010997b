package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/dmatsui/bookkeeping-service/internal/config"
	"github.com/dmatsui/bookkeeping-service/internal/handler"
	"github.com/dmatsui/bookkeeping-service/internal/middleware"
	"github.com/dmatsui/bookkeeping-service/internal/repository"
	"github.com/dmatsui/bookkeeping-service/internal/service"
)

func main() {
	// .env is optional; real environments set variables directly.
	godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger)
	h := handler.NewHandler(svc)

	// Setup router; every route is tenant-scoped.
	r := mux.NewRouter()
	r.Use(middleware.AuthMiddleware(cfg))
	r.HandleFunc("/accounts", h.Accounts).Methods("GET")
	r.HandleFunc("/transactions/import", h.Import).Methods("POST")
	r.HandleFunc("/transactions/imported", h.List).Methods("GET")
	r.HandleFunc("/transactions/imported/{id}", h.Get).Methods("GET")
	r.HandleFunc("/transactions/imported/{id}/post", h.Post).Methods("POST")
	r.HandleFunc("/transactions/imported/{id}/reverse", h.Reverse).Methods("POST")
	r.HandleFunc("/transactions/imported/{id}/delete", h.Delete).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
