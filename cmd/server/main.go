package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mooncakehq/mooncake/internal/app"
	"github.com/mooncakehq/mooncake/internal/handlers"
)

func main() {
	service, err := app.NewService("config.toml")
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	authHandler := handlers.NewAuthHandler(service)
	assignmentHandler := handlers.NewAssignmentHandler(service)
	submissionHandler := handlers.NewSubmissionHandler(service)

	http.HandleFunc("POST /api/v1/auth/login", authHandler.HandleLogin)
	http.HandleFunc("POST /api/v1/auth/signup", authHandler.HandleSignUp)
	http.HandleFunc("POST /api/v1/auth/logout", authHandler.HandleLogout)

	http.HandleFunc("GET /api/v1/assignments", assignmentHandler.HandleList)
	http.HandleFunc("POST /api/v1/assignments", assignmentHandler.HandleCreate)
	http.HandleFunc("PUT /api/v1/assignments/{id}", assignmentHandler.HandleUpdate)
	http.HandleFunc("POST /api/v1/assignments/{id}/duplicate", assignmentHandler.HandleDuplicate)
	http.HandleFunc("POST /api/v1/assignments/{id}/delete", assignmentHandler.HandleRequestDelete)
	http.HandleFunc("POST /api/v1/assignments/{id}/delete/confirm", assignmentHandler.HandleConfirmDelete)
	http.HandleFunc("POST /api/v1/assignments/{id}/delete/cancel", assignmentHandler.HandleCancelDelete)
	http.HandleFunc("POST /api/v1/assignments/{id}/select", assignmentHandler.HandleSelect)
	http.HandleFunc("GET /api/v1/assignments/{id}/dashboard", assignmentHandler.HandleDashboard)

	http.HandleFunc("POST /api/v1/assignments/{id}/submissions", submissionHandler.HandleSubmit)
	http.HandleFunc("GET /api/v1/assignments/{id}/submissions", submissionHandler.HandleList)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting mooncake server on %s", service.Config.Server.Port)
	logger.Debug.Println("Requiring headers:")
	for _, h := range service.Config.API.RequiredHeaders {
		logger.Debug.Printf("  %s: %s", h.Name, h.Value)
	}
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Mooncake server failed: %v", err)
	}
}
