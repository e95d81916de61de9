package web

import (
	"io/fs"
	"net/http"

	"finaxis-assistant/internal/app"
	webui "finaxis-assistant/web"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the static file server.
type Handler struct {
	svc        app.ApplicationService
	fileServer http.Handler
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}

	h := &Handler{
		svc:        svc,
		fileServer: http.FileServer(http.FS(staticFS)),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	r.Route("/api/assistant", func(r chi.Router) {
		r.Post("/command", h.interpretCommand)
		r.Get("/search", h.searchNavigation)
		r.Get("/resolve", h.resolveAccount)

		r.Post("/voice", h.voiceTurn)
		r.Get("/voice/{session}", h.getDraft)
		r.Delete("/voice/{session}", h.cancelDraft)

		r.Get("/history", h.listHistory)
		r.Delete("/history", h.clearHistory)

		r.Get("/library", h.listLibrary)
		r.Post("/library", h.createLibraryEntry)
		r.Put("/library/{id}", h.updateLibraryEntry)
		r.Delete("/library/{id}", h.deleteLibraryEntry)
	})

	// Test console and any other static assets.
	r.Get("/*", h.static)

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) static(w http.ResponseWriter, r *http.Request) {
	h.fileServer.ServeHTTP(w, r)
}
