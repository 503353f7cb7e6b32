package transport

import (
	"net/http"

	"abils-mall/internal/middleware"
	"abils-mall/internal/notify"

	"github.com/go-chi/chi/v5"
)

// NotificationHandler exposes the pending toast queue
type NotificationHandler struct {
	sink *notify.MemorySink
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(sink *notify.MemorySink) *NotificationHandler {
	return &NotificationHandler{sink: sink}
}

// RegisterRoutes registers the notification routes
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/notifications", h.Active)
}

// Active returns notifications that have not yet auto-dismissed
func (h *NotificationHandler) Active(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.sink.Active())
}
