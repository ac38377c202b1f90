package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photopdf/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	albumHandler := handlers.NewAlbumHandler(s.config, s.album)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/album", albumHandler.List)
		r.Post("/album/photos", albumHandler.Upload)
		r.Post("/album/photos/{index}/rotate", albumHandler.Rotate)
		r.Post("/album/photos/{index}/move-up", albumHandler.MoveUp)
		r.Post("/album/photos/{index}/move-down", albumHandler.MoveDown)
		r.Delete("/album/photos/{index}", albumHandler.Remove)
		r.Post("/album/generate", albumHandler.Generate)
	})
}
