package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestHubPublishSubscribe проверяет доставку событий подписчику профиля.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	profileID := uuid.New()

	ch, unsubscribe := hub.Subscribe(profileID)
	defer unsubscribe()

	hub.Publish(profileID, Event{Type: EventTransactionCreated})

	select {
	case event := <-ch:
		if event.Type != EventTransactionCreated {
			t.Fatalf("expected event type %s, got %s", EventTransactionCreated, event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubFamilySubscribers проверяет, что событие получают все подписчики профиля.
func TestHubFamilySubscribers(t *testing.T) {
	hub := NewHub()
	profileID := uuid.New()

	first, unsubFirst := hub.Subscribe(profileID)
	defer unsubFirst()
	second, unsubSecond := hub.Subscribe(profileID)
	defer unsubSecond()

	hub.Publish(profileID, Event{Type: EventBudgetUpdated})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case event := <-ch:
			if event.Type != EventBudgetUpdated {
				t.Fatalf("expected event type %s, got %s", EventBudgetUpdated, event.Type)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatal("expected event to be delivered")
		}
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	profileID := uuid.New()

	ch, unsubscribe := hub.Subscribe(profileID)
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}
