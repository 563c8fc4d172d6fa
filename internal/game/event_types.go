package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for events the engine publishes
const (
	EventTypeGameStarted       EventType = "game_started"
	EventTypeHandDealt         EventType = "hand_dealt"
	EventTypeSelectionChanged  EventType = "selection_changed"
	EventTypeSubroundConfirmed EventType = "subround_confirmed"
	EventTypeRoundCleared      EventType = "round_cleared"
	EventTypeGameOver          EventType = "game_over"
	EventTypeItemBought        EventType = "item_bought"
	EventTypeItemSold          EventType = "item_sold"
	EventTypeShopRefreshed     EventType = "shop_refreshed"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
