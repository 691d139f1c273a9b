package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/digitallysavvy/go-spawner/pkg/spawner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	binaryRoot := os.Getenv("SPAWNER_BINARY_ROOT")
	if binaryRoot == "" {
		binaryRoot = "/opt/services"
	}

	h, err := spawner.New(spawner.ServiceOptions{
		Code:     os.Getenv("SPAWNER_DEMO_CODE"),
		Language: os.Getenv("SPAWNER_DEMO_LANGUAGE"),
	}, spawner.Config{
		BinaryRoot:          binaryRoot,
		ServiceMaxTimeoutMS: 10000,
		MaxConcurrentSpawns: 32,
		Log:                 slog.Default(),
	})
	if err != nil {
		log.Fatalf("spawner: %v", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"service": "go-spawner",
			"version": "1.0.0",
		})
	})

	spawner.Mount(r, "/run", h, nil)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("spawner demo listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
