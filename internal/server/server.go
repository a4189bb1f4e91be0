package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virtualfridge/backend/config"
	"github.com/virtualfridge/backend/internal/api"
	"github.com/virtualfridge/backend/internal/router"
	"github.com/virtualfridge/backend/internal/service"
	"github.com/virtualfridge/backend/internal/store"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New wires the store, services and handlers into a server instance.
func New(cfg *config.Config) (*Server, error) {
	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(st, cfg.JWTSecret)
	barcodeService := service.NewBarcodeService(cfg)
	llmService := service.NewLLMService(cfg)
	inventoryService := service.NewInventoryService(st, barcodeService)
	recipeService := service.NewRecipeService(st, llmService)

	r := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewProductHandler(inventoryService),
		api.NewUserHandler(authService),
		api.NewRecipeHandler(recipeService),
		authService,
	)

	return &Server{
		router: r,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: r,
		},
	}, nil
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
