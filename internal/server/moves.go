package server

import (
	"github.com/lox/wildpoker/internal/game"
)

// move is one engine operation bound to its arguments.
type move func(*game.Engine, *game.State) error

// commandMove resolves a command to the engine operation it names.
func commandMove(t MessageType, args CommandArgs) (move, bool) {
	switch t {
	case MessageTypeStart:
		return (*game.Engine).Start, true
	case MessageTypeToggle:
		return func(e *game.Engine, s *game.State) error { return e.Toggle(s, args.CardID) }, true
	case MessageTypeConfirm:
		return func(e *game.Engine, s *game.State) error {
			_, err := e.Confirm(s)
			return err
		}, true
	case MessageTypeNextSubround:
		return (*game.Engine).AdvanceSubround, true
	case MessageTypeNextRound:
		return (*game.Engine).AdvanceRound, true
	case MessageTypeReset:
		return func(e *game.Engine, s *game.State) error {
			e.Reset(s)
			return nil
		}, true
	case MessageTypeRefreshShop:
		return (*game.Engine).RefreshShop, true
	case MessageTypeBuy:
		return func(e *game.Engine, s *game.State) error {
			_, err := e.Buy(s, args.ItemID)
			return err
		}, true
	case MessageTypeSell:
		return func(e *game.Engine, s *game.State) error {
			_, err := e.Sell(s, args.ItemID)
			return err
		}, true
	}
	return nil, false
}
