package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Типы событий семейной группы.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
	EventBudgetUpdated      = "budget.updated"
	EventFamilyMemberAdded  = "family.member_added"
)

type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub раздает события по профилю: все члены семьи подписаны на общий
// профиль мастера и видят изменения друг друга.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan Event]struct{}
}

// NewHub создает хаб для SSE-подписок.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[chan Event]struct{}),
	}
}

// Subscribe подписывает клиента на события профиля и возвращает канал и функцию отписки.
func (h *Hub) Subscribe(profileID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	profileSubs, ok := h.subscribers[profileID]
	if !ok {
		profileSubs = make(map[chan Event]struct{})
		h.subscribers[profileID] = profileSubs
	}
	profileSubs[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if subs, exists := h.subscribers[profileID]; exists {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, profileID)
			}
		}
		close(ch)
	}
}

// Publish отправляет событие всем подписчикам профиля.
func (h *Hub) Publish(profileID uuid.UUID, event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.subscribers[profileID]
	if !ok {
		return
	}

	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
