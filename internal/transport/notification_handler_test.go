package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"abils-mall/internal/notify"

	"github.com/go-chi/chi/v5"
)

func TestNotificationsEndpoint(t *testing.T) {
	sink := notify.NewMemorySink(notify.DefaultTTL)
	handler := NewNotificationHandler(sink)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	sink.Publish("Cart cleared", notify.SeveritySuccess)
	sink.Publish("Only 5 items in stock", notify.SeverityError)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var notifications []notify.Notification
	if err := json.Unmarshal(w.Body.Bytes(), &notifications); err != nil {
		t.Fatalf("Failed to decode notifications: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(notifications))
	}
	if notifications[0].Message != "Cart cleared" || notifications[0].Severity != notify.SeveritySuccess {
		t.Errorf("Unexpected first notification: %+v", notifications[0])
	}
}
