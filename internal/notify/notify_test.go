package notify

import (
	"testing"
	"time"
)

func TestPublishAndActive(t *testing.T) {
	sink := NewMemorySink(3 * time.Second)

	sink.Publish("Item added to cart", SeveritySuccess)
	sink.Publish("Only 5 items in stock", SeverityError)

	active := sink.Active()
	if len(active) != 2 {
		t.Fatalf("Expected 2 active notifications, got %d", len(active))
	}

	if active[0].Message != "Item added to cart" || active[0].Severity != SeveritySuccess {
		t.Errorf("Unexpected first notification: %+v", active[0])
	}
	if active[1].Message != "Only 5 items in stock" || active[1].Severity != SeverityError {
		t.Errorf("Unexpected second notification: %+v", active[1])
	}
	if active[0].ID == active[1].ID {
		t.Error("Notifications should have distinct IDs")
	}
}

func TestNotificationsExpireAfterTTL(t *testing.T) {
	now := time.Now()
	sink := NewMemorySink(3 * time.Second)
	sink.now = func() time.Time { return now }

	sink.Publish("Cart cleared", SeveritySuccess)

	// Just before the TTL the notification is still visible
	sink.now = func() time.Time { return now.Add(2900 * time.Millisecond) }
	if got := len(sink.Active()); got != 1 {
		t.Fatalf("Expected notification still active, got %d", got)
	}

	// At the TTL it is gone
	sink.now = func() time.Time { return now.Add(3 * time.Second) }
	if got := len(sink.Active()); got != 0 {
		t.Fatalf("Expected notification expired, got %d", got)
	}
}

func TestExpiryIsPerNotification(t *testing.T) {
	now := time.Now()
	sink := NewMemorySink(3 * time.Second)
	sink.now = func() time.Time { return now }

	sink.Publish("first", SeverityInfo)

	sink.now = func() time.Time { return now.Add(2 * time.Second) }
	sink.Publish("second", SeverityInfo)

	sink.now = func() time.Time { return now.Add(4 * time.Second) }
	active := sink.Active()
	if len(active) != 1 || active[0].Message != "second" {
		t.Fatalf("Expected only the second notification, got %+v", active)
	}
}

func TestNonPositiveTTLFallsBackToDefault(t *testing.T) {
	sink := NewMemorySink(0)
	if sink.ttl != DefaultTTL {
		t.Errorf("Expected default TTL %v, got %v", DefaultTTL, sink.ttl)
	}
}
