package items

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/mitchellh/mapstructure"
)

// Persisted items keep the loose {type, target, value} shape of the saved
// game document. The typed effects are rebuilt from it on load.

const (
	targetAll    = "all"
	targetRandom = "random"
	targetJoker  = "Joker"
)

type effectWire struct {
	Type   Kind `json:"type"`
	Target any  `json:"target,omitempty"`
	Value  any  `json:"value"`
}

type mixedValue struct {
	Main         float64 `json:"main" mapstructure:"main"`
	Penalty      any     `json:"penalty" mapstructure:"penalty"`
	PenaltyValue float64 `json:"penaltyValue,omitempty" mapstructure:"penaltyValue"`
}

type itemWire struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
	effectWire
	BuyPrice  int    `json:"buyPrice"`
	SellPrice int    `json:"sellPrice"`
	Icon      string `json:"icon,omitempty"`
}

type templateWire struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
	effectWire
	BasePrice int    `json:"basePrice"`
	Icon      string `json:"icon,omitempty"`
}

type offerWire struct {
	templateWire
	Price     int `json:"price"`
	SellPrice int `json:"sellPrice"`
}

func (it Item) MarshalJSON() ([]byte, error) {
	ew, err := encodeEffect(it.Effect)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", it.ID, err)
	}
	return json.Marshal(itemWire{
		ID: it.ID, Name: it.Name, Desc: it.Desc, Icon: it.Icon,
		effectWire: ew,
		BuyPrice:   it.BuyPrice, SellPrice: it.SellPrice,
	})
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var w itemWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	e, err := decodeEffect(w.effectWire)
	if err != nil {
		return fmt.Errorf("item %s: %w", w.ID, err)
	}
	*it = Item{
		ID: w.ID, Name: w.Name, Desc: w.Desc, Icon: w.Icon,
		Effect:   e,
		BuyPrice: w.BuyPrice, SellPrice: w.SellPrice,
	}
	return nil
}

func (t Template) wire() (templateWire, error) {
	ew, err := encodeEffect(t.Effect)
	if err != nil {
		return templateWire{}, fmt.Errorf("template %s: %w", t.ID, err)
	}
	return templateWire{
		ID: t.ID, Name: t.Name, Desc: t.Desc, Icon: t.Icon,
		effectWire: ew,
		BasePrice:  t.BasePrice,
	}, nil
}

func (w templateWire) template() (Template, error) {
	e, err := decodeEffect(w.effectWire)
	if err != nil {
		return Template{}, fmt.Errorf("template %s: %w", w.ID, err)
	}
	return Template{ID: w.ID, Name: w.Name, Desc: w.Desc, Icon: w.Icon, Effect: e, BasePrice: w.BasePrice}, nil
}

func (t Template) MarshalJSON() ([]byte, error) {
	w, err := t.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func (t *Template) UnmarshalJSON(b []byte) error {
	var w templateWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	parsed, err := w.template()
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (o Offer) MarshalJSON() ([]byte, error) {
	w, err := o.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(offerWire{templateWire: w, Price: o.Price, SellPrice: o.SellPrice})
}

func (o *Offer) UnmarshalJSON(b []byte) error {
	var w offerWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t, err := w.template()
	if err != nil {
		return err
	}
	*o = Offer{Template: t, Price: w.Price, SellPrice: w.SellPrice}
	return nil
}

func encodeEffect(e Effect) (effectWire, error) {
	switch e := e.(type) {
	case PointBoost:
		return effectWire{Type: e.Kind(), Target: encodeRankTarget(e.Target), Value: e.Value}, nil
	case MultiplierBoost:
		target := targetAll
		if !e.All {
			target = e.Category.String()
		}
		return effectWire{Type: e.Kind(), Target: target, Value: e.Factor}, nil
	case PairMultiplierBoost:
		return effectWire{Type: e.Kind(), Target: hand.Pair.String(), Value: e.Value}, nil
	case MixedBoost:
		target := targetAll
		if e.Random {
			target = targetRandom
		}
		v := mixedValue{Main: e.Main, Penalty: e.Points}
		if len(e.Categories) > 0 {
			v.Penalty = categoryNames(e.Categories)
			v.PenaltyValue = e.CategoryFactor
		}
		return effectWire{Type: e.Kind(), Target: target, Value: v}, nil
	case MixedHandBoost:
		cats := make([]hand.Category, 0, len(e.Factors))
		values := make(map[string]float64, len(e.Factors))
		for c, f := range e.Factors {
			cats = append(cats, c)
			values[c.String()] = f
		}
		slices.Sort(cats)
		return effectWire{Type: e.Kind(), Target: categoryNames(cats), Value: values}, nil
	case PlasticBoost:
		return effectWire{Type: e.Kind(), Target: targetAll, Value: e.Factor}, nil
	case GreedyBoost:
		return effectWire{Type: e.Kind(), Target: targetAll, Value: e.Factor}, nil
	case HandSizeBoost:
		return effectWire{Type: e.Kind(), Target: "hand", Value: e.Value}, nil
	case SubroundBoost:
		return effectWire{Type: e.Kind(), Target: "subround", Value: e.Value}, nil
	case JokerBoost:
		return effectWire{Type: e.Kind(), Target: "joker", Value: e.Value}, nil
	case SlotBoost:
		return effectWire{Type: e.Kind(), Target: "slots", Value: e.Value}, nil
	case ScoreGrant:
		return effectWire{Type: e.Kind(), Target: "score", Value: e.Value}, nil
	case nil:
		return effectWire{}, fmt.Errorf("missing effect")
	default:
		return effectWire{}, fmt.Errorf("unsupported effect %T", e)
	}
}

func decodeEffect(w effectWire) (Effect, error) {
	switch w.Type {
	case KindPointBoost:
		target, err := decodeRankTarget(w.Target)
		if err != nil {
			return nil, err
		}
		var v int
		if err := decodeValue(w.Value, &v); err != nil {
			return nil, err
		}
		return PointBoost{Target: target, Value: v}, nil

	case KindMultiplierBoost:
		var name string
		if err := decodeValue(w.Target, &name); err != nil {
			return nil, err
		}
		var f float64
		if err := decodeValue(w.Value, &f); err != nil {
			return nil, err
		}
		if name == targetAll {
			return MultiplierBoost{All: true, Factor: f}, nil
		}
		c, err := hand.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		return MultiplierBoost{Category: c, Factor: f}, nil

	case KindPairMultiplierBoost:
		var f float64
		if err := decodeValue(w.Value, &f); err != nil {
			return nil, err
		}
		return PairMultiplierBoost{Value: f}, nil

	case KindMixedBoost:
		var v mixedValue
		if err := decodeValue(w.Value, &v); err != nil {
			return nil, err
		}
		e := MixedBoost{Main: v.Main, Random: w.Target == targetRandom}
		switch p := v.Penalty.(type) {
		case nil:
		case []any, []string:
			var names []string
			if err := decodeValue(p, &names); err != nil {
				return nil, err
			}
			cats, err := parseCategories(names)
			if err != nil {
				return nil, err
			}
			e.Categories = cats
			e.CategoryFactor = v.PenaltyValue
		default:
			if err := decodeValue(p, &e.Points); err != nil {
				return nil, fmt.Errorf("mixed penalty: %w", err)
			}
		}
		return e, nil

	case KindMixedHandBoost:
		var values map[string]float64
		if err := decodeValue(w.Value, &values); err != nil {
			return nil, err
		}
		e := MixedHandBoost{Factors: make(map[hand.Category]float64, len(values))}
		for name, f := range values {
			c, err := hand.ParseCategory(name)
			if err != nil {
				return nil, err
			}
			e.Factors[c] = f
		}
		return e, nil

	case KindPlasticBoost, KindGreedyBoost:
		var f float64
		if err := decodeValue(w.Value, &f); err != nil {
			return nil, err
		}
		if w.Type == KindPlasticBoost {
			return PlasticBoost{Factor: f}, nil
		}
		return GreedyBoost{Factor: f}, nil

	case KindHandSizeBoost, KindSubroundBoost, KindJokerBoost, KindSlotBoost, KindScoreGrant:
		var n int
		if err := decodeValue(w.Value, &n); err != nil {
			return nil, err
		}
		switch w.Type {
		case KindHandSizeBoost:
			return HandSizeBoost{Value: n}, nil
		case KindSubroundBoost:
			return SubroundBoost{Value: n}, nil
		case KindJokerBoost:
			return JokerBoost{Value: n}, nil
		case KindSlotBoost:
			return SlotBoost{Value: n}, nil
		default:
			return ScoreGrant{Value: n}, nil
		}
	}
	return nil, fmt.Errorf("unknown effect type %q", w.Type)
}

func decodeValue(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

func encodeRankTarget(t deck.Target) any {
	switch {
	case t.All:
		return targetAll
	case t.Wild:
		return targetJoker
	case len(t.Ranks) == 1:
		return t.Ranks[0].String()
	}
	names := make([]string, len(t.Ranks))
	for i, r := range t.Ranks {
		names[i] = r.String()
	}
	return names
}

// decodeRankTarget accepts "all", "Joker", a single rank or a rank list.
func decodeRankTarget(in any) (deck.Target, error) {
	var names []string
	if err := decodeValue(in, &names); err != nil {
		return deck.Target{}, fmt.Errorf("point target: %w", err)
	}
	if len(names) == 1 {
		switch {
		case names[0] == targetAll:
			return deck.Target{All: true}, nil
		case strings.EqualFold(names[0], targetJoker):
			return deck.Target{Wild: true}, nil
		}
	}
	t := deck.Target{Ranks: make([]deck.Rank, 0, len(names))}
	for _, name := range names {
		r, err := deck.ParseRank(name)
		if err != nil {
			return deck.Target{}, err
		}
		if r == deck.Joker {
			t.Wild = true
			continue
		}
		t.Ranks = append(t.Ranks, r)
	}
	return t, nil
}

func categoryNames(cats []hand.Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return names
}

func parseCategories(names []string) ([]hand.Category, error) {
	cats := make([]hand.Category, 0, len(names))
	for _, name := range names {
		c, err := hand.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}
