// internal/httpapi/admin.go
//
// Admin surface: login plus read/flag/delete over stored messages.
//
// Context
// -------
// Login trades username/password for a bearer token; everything else runs
// behind auth.Require (wired in router.go).  Missing ids are 404s, bad
// credentials are 401s, and datastore failures surface as an opaque
// "Server error." with detail only in the logs.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abasuthakur/portfolio-api/internal/admin"
	"github.com/abasuthakur/portfolio-api/internal/auth"
	"github.com/abasuthakur/portfolio-api/internal/contact"
	"github.com/abasuthakur/portfolio-api/internal/metrics"
)

// AdminHandler serves /api/admin.
type AdminHandler struct {
	messages *contact.Repository
	admins   *admin.Repository
	signer   *auth.Signer
}

// NewAdminHandler wires the handler to its collaborators.
func NewAdminHandler(messages *contact.Repository, admins *admin.Repository, signer *auth.Signer) *AdminHandler {
	return &AdminHandler{messages: messages, admins: admins, signer: signer}
}

/*──────────────────────────── login ────────────────────────────────────────*/

func (h *AdminHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		body.Username == "" || body.Password == "" {
		fail(w, http.StatusBadRequest, "Username and password required.")
		return
	}

	user, err := h.admins.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		zap.S().Errorw("admin login failed", "err", err)
		fail(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if user == nil {
		metrics.AdminAuthFailuresTotal.Inc()
		fail(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := h.signer.Sign(user.ID, user.Username)
	if err != nil {
		zap.S().Errorw("token sign failed", "err", err)
		fail(w, http.StatusInternalServerError, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"token":    token,
		"username": user.Username,
	})
}

/*──────────────────────────── message CRUD ─────────────────────────────────*/

func (h *AdminHandler) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.messages.All(r.Context())
	if err != nil {
		zap.S().Errorw("message list failed", "err", err)
		fail(w, http.StatusInternalServerError, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(rows),
		"results": rows,
	})
}

func (h *AdminHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		fail(w, http.StatusNotFound, "Message not found.")
		return
	}
	m, err := h.messages.ByID(r.Context(), id)
	if err != nil {
		zap.S().Errorw("message fetch failed", "id", id, "err", err)
		fail(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if m == nil {
		fail(w, http.StatusNotFound, "Message not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": m})
}

func (h *AdminHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		fail(w, http.StatusNotFound, "Message not found.")
		return
	}

	// Only the read flag is mutable; anything else in the body is ignored.
	var body struct {
		IsRead bool `json:"is_read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	m, err := h.messages.SetRead(r.Context(), id, body.IsRead)
	if err != nil {
		zap.S().Errorw("message update failed", "id", id, "err", err)
		fail(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if m == nil {
		fail(w, http.StatusNotFound, "Message not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": m})
}

func (h *AdminHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		fail(w, http.StatusNotFound, "Message not found.")
		return
	}
	deleted, err := h.messages.Delete(r.Context(), id)
	if err != nil {
		zap.S().Errorw("message delete failed", "id", id, "err", err)
		fail(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if !deleted {
		fail(w, http.StatusNotFound, "Message not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message deleted.",
	})
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

// pathID parses the {id} route parameter.  A non-numeric id behaves like a
// missing row rather than a client syntax error, matching the old API.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
