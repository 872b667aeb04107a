// internal/httpapi/contact.go
//
// Public contact-form endpoint.
//
// Context
// -------
// POST /api/contact is the one write path visitors reach.  Flow: decode →
// validate → persist (awaited) → enqueue both notification emails
// (fire-and-forget) → 201.  Validation failures return a per-field error
// map and touch nothing; email failures never surface here at all — the
// dispatcher owns them.
package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/abasuthakur/portfolio-api/internal/contact"
	"github.com/abasuthakur/portfolio-api/internal/metrics"
	"github.com/abasuthakur/portfolio-api/internal/requestinfo"
)

// maxBodyBytes caps the request body, mirroring the 1 MB JSON limit the
// production service enforced.
const maxBodyBytes = 1 << 20

// Notifier is the slice of the mail dispatcher the handler needs; tests
// substitute a recording fake.
type Notifier interface {
	EnqueueNotification(m *contact.Message)
	EnqueueAutoReply(m *contact.Message)
}

// ContactHandler serves the public submission endpoint.
type ContactHandler struct {
	repo     *contact.Repository
	notifier Notifier
}

// NewContactHandler wires the handler to its collaborators.
func NewContactHandler(repo *contact.Repository, notifier Notifier) *ContactHandler {
	return &ContactHandler{repo: repo, notifier: notifier}
}

func (h *ContactHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var sub contact.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		fail(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	if errs := sub.Validate(); len(errs) > 0 {
		metrics.ValidationFailuresTotal.Inc()
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"errors":  errs,
		})
		return
	}

	saved, err := h.repo.Create(r.Context(), sub)
	if err != nil {
		zap.S().Errorw("contact save failed", "err", err)
		fail(w, http.StatusInternalServerError,
			"An error occurred while saving your message. Please try again later.")
		return
	}
	metrics.SubmissionsTotal.Inc()

	// Origin annotation for abuse triage; best-effort.
	if info := requestinfo.FromContext(r.Context()); info != nil {
		zap.S().Infow("message stored",
			"id", saved.ID,
			"country", info.Geo.CountryISO,
			"device", info.UA.Device,
			"bot", info.UA.IsBot,
		)
	} else {
		zap.S().Infow("message stored", "id", saved.ID)
	}

	// Fire-and-forget: the response does not wait on either send.
	h.notifier.EnqueueNotification(saved)
	h.notifier.EnqueueAutoReply(saved)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Your message has been received successfully. We will get back to you soon!",
		"data":    saved,
	})
}
