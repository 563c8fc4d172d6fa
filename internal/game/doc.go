// Package game implements round progression for wildcard poker solitaire.
//
// The main type is State, a single JSON-serialisable document holding the
// hand, selection, score ledger and owned items. An Engine applies moves to
// it and publishes events describing what changed.
//
// # Basic Usage
//
//	engine := game.NewEngine(game.DefaultRules(), randutil.New(42), logger)
//	s := engine.NewState()
//	_ = engine.Start(s)
//	for _, c := range s.Hand[:5] {
//	    _ = engine.Toggle(s, c.ID)
//	}
//	play, err := engine.Confirm(s)
//
// # Deterministic Testing
//
// Every random draw (deck penalty rolls, shuffles, shop sampling) comes from
// the source passed to NewEngine, so a fixed seed replays a game exactly.
// The outcome reveal uses the injected quartz clock:
//
//	clock := quartz.NewMock(t)
//	engine := game.NewEngine(rules, randutil.New(1), logger, game.WithClock(clock))
//
// # Validation
//
// Moves the rules forbid return a *ValidationError and leave the state
// untouched. Every move validates completely before its first write.
package game
