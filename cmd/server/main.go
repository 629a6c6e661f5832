package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/legal-bench/backend/internal/auth"
	"github.com/legal-bench/backend/internal/config"
	"github.com/legal-bench/backend/internal/evaluation"
	"github.com/legal-bench/backend/internal/generator"
	"github.com/legal-bench/backend/internal/models"
	"github.com/legal-bench/backend/internal/provider"
	"github.com/legal-bench/backend/internal/review"
	"github.com/legal-bench/backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	st, err := store.FromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	if pg, ok := st.(*store.Postgres); ok {
		defer pg.Close()
	}

	prov, err := provider.FromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize provider: %v", err)
	}

	gen := generator.New(prov, config.ModelIDs)
	analyzer := generator.NewAnalyzer(prov, config.ModelIDs)

	reviewHandler := review.NewHandler(review.NewService(gen, analyzer, st))
	evalHandler := evaluation.NewHandler(
		evaluation.NewService(evaluation.NewEvaluator(prov, config.ModelIDs), st))
	authHandler := auth.NewHandlerFromEnv()
	if authHandler.Enabled() {
		log.Println("Operator auth enabled")
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authHandler.Middleware)
	protected.HandleFunc("/config", getConfig).Methods("GET")

	protected.HandleFunc("/generate", reviewHandler.Generate).Methods("POST")
	protected.HandleFunc("/review", reviewHandler.Snapshot).Methods("GET")
	protected.HandleFunc("/review/approve", reviewHandler.Approve).Methods("POST")
	protected.HandleFunc("/review/skip", reviewHandler.Skip).Methods("POST")
	protected.HandleFunc("/review/back", reviewHandler.Back).Methods("POST")
	protected.HandleFunc("/review/reset", reviewHandler.Reset).Methods("POST")

	protected.HandleFunc("/reference", reviewHandler.AnalyzeReference).Methods("POST")
	protected.HandleFunc("/reference", reviewHandler.GetReference).Methods("GET")
	protected.HandleFunc("/reference", reviewHandler.ClearReference).Methods("DELETE")
	protected.HandleFunc("/reference/answers", reviewHandler.ReferenceAnswers).Methods("POST")

	protected.HandleFunc("/questions", evalHandler.Questions).Methods("GET")
	protected.HandleFunc("/evaluate", evalHandler.Evaluate).Methods("POST")
	protected.HandleFunc("/leaderboard", evalHandler.Leaderboard).Methods("GET")
	protected.HandleFunc("/results", evalHandler.Results).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := config.Getenv("PORT", "8080")
	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func getConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ConfigResponse{
		Topics: config.Topics,
		Models: config.ModelNames,
	})
}
