package network

import (
	"sync"

	"underkingdom-server/pkg/api"
)

// Broadcaster занимается только рассылкой уведомлений подписчикам.
// Ядро симуляции кладет событие и идет дальше: полный канал
// просто теряет сообщение, блокировки нет.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: id подписчика -> личный канал
	subscribers map[string]chan api.Notification
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.Notification),
	}
}

// Register создает личный канал подписчика
func (b *Broadcaster) Register(subscriberID string) chan api.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[subscriberID]; ok {
		close(old)
	}

	ch := make(chan api.Notification, 256)
	b.subscribers[subscriberID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[subscriberID]; ok {
		close(ch)
		delete(b.subscribers, subscriberID)
	}
}

// Broadcast отправляет событие всем подписчикам
func (b *Broadcaster) Broadcast(msg api.Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			// Подписчик не успевает - его проблемы, симуляцию не держим
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
