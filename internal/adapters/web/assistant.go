package web

import (
	"errors"
	"net/http"
	"strconv"

	"finaxis-assistant/internal/library"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ── Request types ─────────────────────────────────────────────────────────────

type commandRequest struct {
	Text string `json:"text"`
}

type voiceTurnRequest struct {
	SessionID string `json:"session_id"` // empty on the first turn
	Text      string `json:"text"`
}

type libraryEntryRequest struct {
	Titulo  string `json:"titulo"`
	Comando string `json:"comando"`
}

// ── Command interpretation — POST /api/assistant/command ──────────────────────

func (h *Handler) interpretCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.InterpretCommand(r.Context(), req.Text)
	if err != nil {
		// Upstream NLU failure: transient, user-visible, not a crash.
		writeError(w, r, "No pude interpretar el comando. Intenta de nuevo.", "NLU_ERROR", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

// ── Voice draft flow — /api/assistant/voice ───────────────────────────────────

// voiceTurn applies one utterance to the session's document draft. The
// first turn may omit session_id; the server assigns one and the client
// echoes it on subsequent turns.
func (h *Handler) voiceTurn(w http.ResponseWriter, r *http.Request) {
	var req voiceTurnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	result, err := h.svc.ApplyVoiceTurn(r.Context(), req.SessionID, req.Text)
	if err != nil {
		writeError(w, r, err.Error(), "VOICE_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) getDraft(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDraft(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeError(w, r, err.Error(), "VOICE_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) cancelDraft(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CancelDraft(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeError(w, r, err.Error(), "VOICE_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// ── Navigation search — GET /api/assistant/search?q=&limit= ───────────────────

func (h *Handler) searchNavigation(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	result, err := h.svc.SearchNavigation(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, r, err.Error(), "SEARCH_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// ── Account resolution — GET /api/assistant/resolve?company=&q= ───────────────

func (h *Handler) resolveAccount(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	query := r.URL.Query().Get("q")
	if company == "" || query == "" {
		writeError(w, r, "company and q are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ResolveAccount(r.Context(), company, query)
	if err != nil {
		writeError(w, r, err.Error(), "RESOLVE_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// ── History — /api/assistant/history ──────────────────────────────────────────

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListHistory(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "HISTORY_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearHistory(r.Context()); err != nil {
		writeError(w, r, err.Error(), "HISTORY_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

// ── Library — /api/assistant/library ──────────────────────────────────────────

func (h *Handler) listLibrary(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListLibrary(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "LIBRARY_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createLibraryEntry(w http.ResponseWriter, r *http.Request) {
	var req libraryEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateLibraryEntry(r.Context(), req.Titulo, req.Comando)
	if err != nil {
		writeError(w, r, err.Error(), "LIBRARY_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) updateLibraryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req libraryEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateLibraryEntry(r.Context(), id, req.Titulo, req.Comando)
	if err != nil {
		h.writeLibraryError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) deleteLibraryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.DeleteLibraryEntry(r.Context(), id)
	if err != nil {
		h.writeLibraryError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) writeLibraryError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, library.ErrNotFound) {
		writeError(w, r, "library entry not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeError(w, r, err.Error(), "LIBRARY_ERROR", http.StatusUnprocessableEntity)
}
