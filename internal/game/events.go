package game

import (
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/items"
)

// GameEvent represents anything the engine reports to presentation layers
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartedEvent is published when a game begins
type GameStartedEvent struct {
	Round       int `json:"round"`
	TotalRounds int `json:"totalRounds"`
	Threshold   int `json:"threshold"`
	timestamp   time.Time
}

func (e GameStartedEvent) EventType() EventType { return EventTypeGameStarted }
func (e GameStartedEvent) Timestamp() time.Time { return e.timestamp }

// HandDealtEvent is published whenever the hand is dealt or rebuilt
type HandDealtEvent struct {
	Round    int         `json:"round"`
	Subround int         `json:"subround"`
	Hand     []deck.Card `json:"hand"`
	// Rebuilt is set when an item change re-dealt the current hand.
	Rebuilt   bool `json:"rebuilt"`
	timestamp time.Time
}

func (e HandDealtEvent) EventType() EventType { return EventTypeHandDealt }
func (e HandDealtEvent) Timestamp() time.Time { return e.timestamp }

// SelectionChangedEvent is published when a card is toggled
type SelectionChangedEvent struct {
	Selected  []deck.Card `json:"selected"`
	Preview   *Preview    `json:"preview,omitempty"`
	timestamp time.Time
}

func (e SelectionChangedEvent) EventType() EventType { return EventTypeSelectionChanged }
func (e SelectionChangedEvent) Timestamp() time.Time { return e.timestamp }

// SubroundConfirmedEvent is published when a selection is scored
type SubroundConfirmedEvent struct {
	Play      Play `json:"play"`
	timestamp time.Time
}

func (e SubroundConfirmedEvent) EventType() EventType { return EventTypeSubroundConfirmed }
func (e SubroundConfirmedEvent) Timestamp() time.Time { return e.timestamp }

// RoundClearedEvent is published when the last subround meets the threshold
// and another round follows
type RoundClearedEvent struct {
	Round      int `json:"round"`
	TotalScore int `json:"totalScore"`
	Threshold  int `json:"threshold"`
	timestamp  time.Time
}

func (e RoundClearedEvent) EventType() EventType { return EventTypeRoundCleared }
func (e RoundClearedEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published after the reveal delay once the game is decided
type GameOverEvent struct {
	Outcome    Outcome `json:"outcome"`
	Round      int     `json:"round"`
	TotalScore int     `json:"totalScore"`
	Threshold  int     `json:"threshold"`
	timestamp  time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// ItemBoughtEvent is published after a purchase
type ItemBoughtEvent struct {
	Item       items.Item `json:"item"`
	Price      int        `json:"price"`
	OneTime    bool       `json:"oneTime"`
	TotalScore int        `json:"totalScore"`
	timestamp  time.Time
}

func (e ItemBoughtEvent) EventType() EventType { return EventTypeItemBought }
func (e ItemBoughtEvent) Timestamp() time.Time { return e.timestamp }

// ItemSoldEvent is published after a sale
type ItemSoldEvent struct {
	Item       items.Item `json:"item"`
	TotalScore int        `json:"totalScore"`
	timestamp  time.Time
}

func (e ItemSoldEvent) EventType() EventType { return EventTypeItemSold }
func (e ItemSoldEvent) Timestamp() time.Time { return e.timestamp }

// ShopRefreshedEvent is published when new offers are rolled
type ShopRefreshedEvent struct {
	Offers    []items.Offer `json:"offers"`
	Count     int           `json:"count"`
	timestamp time.Time
}

func (e ShopRefreshedEvent) EventType() EventType { return EventTypeShopRefreshed }
func (e ShopRefreshedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delayed
// events arrive from timer goroutines, so the subscriber list is guarded.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. SubscriberFunc
// values cannot be compared, so only pointer or value subscribers can be
// removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sameSubscriber(sub, subscriber) {
			bus.subscribers = slices.Delete(slices.Clone(bus.subscribers), i, i+1)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := bus.subscribers
	bus.mu.RUnlock()
	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

func sameSubscriber(a, b EventSubscriber) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}
