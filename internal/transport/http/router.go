package http

import (
	"net/http"
	"time"

	httpmw "github.com/streamhub/stream-service/internal/transport/http/middleware"
	"github.com/streamhub/stream-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint; kept outside the api group so no wrapping middleware
	// interferes with the upgrade
	r.Get("/ws", wsServer.HandleWS)

	r.Route("/api", func(api chi.Router) {
		api.Use(httpmw.RequestID)
		api.Use(httpmw.Logging)
		api.Use(middlewareChi.Timeout(30 * time.Second))

		api.Route("/streams", func(sr chi.Router) {
			sr.Get("/", h.ListStreams)

			sr.Route("/{id}", func(rr chi.Router) {
				rr.Get("/", h.GetStream)
				rr.Get("/chat", h.GetChatHistory)
				rr.Post("/donations", h.CreateDonation)
				rr.Get("/recommended", h.GetRecommended)
			})
		})

		api.Get("/categories", h.GetCategories)
		api.Post("/auth/login", h.Login)
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
