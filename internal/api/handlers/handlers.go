// Package handlers implements the HTTP handlers for the Command Center
// assistant service: session lifecycle, message cycles, voice transcript
// intake, the dashboard data API, and cycle traces.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/atlasgrid/command-center/internal/assistant"
	"github.com/atlasgrid/command-center/internal/catalog"
	"github.com/atlasgrid/command-center/internal/conversation"
	"github.com/atlasgrid/command-center/internal/prompt"
	"github.com/atlasgrid/command-center/internal/store"
	"github.com/atlasgrid/command-center/internal/voice"
)

// Handlers holds all handler dependencies.
type Handlers struct {
	Store     store.Store
	Assistant *assistant.Service
	Catalog   *catalog.Catalog
	Voice     *voice.Bridge

	// MaxMessageLen bounds inbound message bodies.
	MaxMessageLen int
}

// New creates a Handlers instance with all dependencies.
func New(s store.Store, svc *assistant.Service, cat *catalog.Catalog, bridge *voice.Bridge, maxMessageLen int) *Handlers {
	return &Handlers{
		Store:         s,
		Assistant:     svc,
		Catalog:       cat,
		Voice:         bridge,
		MaxMessageLen: maxMessageLen,
	}
}

// ── Session Handlers ─────────────────────────────────────────

func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := conversation.NewSession(uuid.New().String())
	if err := h.Store.CreateSession(r.Context(), sess); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"session": sess.Info(),
		"turns":   sess.Turns(),
	})
}

func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Store.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, infos)
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Store.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session": sess.Info(),
		"turns":   sess.Turns(),
	})
}

func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ResetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Store.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := sess.Reset(); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session": sess.Info(),
		"turns":   sess.Turns(),
	})
}

func (h *Handlers) ListTurns(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Store.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sess.Turns())
}

// ── Message Cycle ────────────────────────────────────────────

type messageRequest struct {
	Content string `json:"content"`
}

func (h *Handlers) validateMessage(req messageRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Content,
			validation.Required,
			validation.Length(1, h.MaxMessageLen),
		),
	)
}

// SubmitMessage runs one assistant request cycle. A second submission while
// a cycle is in flight gets 409; the caller must wait for the current cycle
// to resolve and re-submit.
func (h *Handlers) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validateMessage(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	turn, err := h.Assistant.Submit(r.Context(), chi.URLParam(r, "sessionID"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrCycleInFlight):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, prompt.ErrEmptyMessage):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusNotFound, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, turn)
}

// ── Voice Transcript ─────────────────────────────────────────

// SubmitTranscript stores a voice transcript as the session's pending
// input. The transcript is identical in shape to typed input; the client
// reviews it and submits it as a regular message.
func (h *Handlers) SubmitTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.Store.GetSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validateMessage(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Voice.Push(sessionID, req.Content)
	respondJSON(w, http.StatusOK, map[string]string{"pending": req.Content})
}

// GetTranscript pops the pending transcript for the session, if any.
func (h *Handlers) GetTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.Store.GetSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	transcript, ok := h.Voice.Pop(sessionID)
	if !ok {
		respondError(w, http.StatusNotFound, "no pending transcript")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"pending": transcript})
}

// ── Quick Actions ────────────────────────────────────────────

func (h *Handlers) ListQuickActions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Catalog.QuickActions())
}

// ── Dashboard Data ───────────────────────────────────────────

func (h *Handlers) ListKPIs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Catalog.KPIs())
}

func (h *Handlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Catalog.Alerts())
}

func (h *Handlers) GetAlert(w http.ResponseWriter, r *http.Request) {
	alert, ok := h.Catalog.Alert(chi.URLParam(r, "alertID"))
	if !ok {
		respondError(w, http.StatusNotFound, "alert not found")
		return
	}
	respondJSON(w, http.StatusOK, alert)
}

func (h *Handlers) ListTrends(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Catalog.Trends())
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Catalog.Profile())
}

// ── Traces ───────────────────────────────────────────────────

func (h *Handlers) ListTraces(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	traces, err := h.Store.ListTraces(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, traces)
}

func (h *Handlers) GetTrace(w http.ResponseWriter, r *http.Request) {
	trace, err := h.Store.GetTrace(r.Context(), chi.URLParam(r, "traceID"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, trace)
}

// ── Helpers ──────────────────────────────────────────────────

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
