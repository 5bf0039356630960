package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "routerchat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatHandler *ChatHandler, modelHandler *ModelHandler, defaultUserID string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		// Signed download links authorize by token, not by user.
		r.Get("/attachments/{attachmentID}/content", chatHandler.DownloadAttachment)

		r.Group(func(r chi.Router) {
			r.Use(WithUserID(defaultUserID))

			// Plain CRUD gets a request timeout.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(60 * time.Second))

				r.Get("/chats", chatHandler.ListChats)
				r.Get("/chats/{chatID}", chatHandler.GetChat)
				r.Put("/chats/{chatID}", chatHandler.UpdateChat)
				r.Delete("/chats/{chatID}", chatHandler.DeleteChat)
				r.Delete("/chats/{chatID}/attachments/{attachmentID}", chatHandler.DeleteAttachment)

				r.Get("/models", modelHandler.HandleListModels)
			})

			// Routes that wait on the model or on large uploads must NOT have a
			// timeout; the upstream client enforces its own.
			r.Group(func(r chi.Router) {
				r.Post("/chats", chatHandler.CreateChat)
				r.Post("/chats/{chatID}/messages", chatHandler.SendMessage)
				r.Post("/chats/{chatID}/upload", chatHandler.UploadDocument)
			})
		})
	})

	return r
}
