package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/scoring"
	"github.com/lox/wildpoker/internal/tui"
)

// ClassifyCmd scores five cards
type ClassifyCmd struct {
	Cards []string `arg:"" help:"Five cards, e.g. 5c 5d 9s 9h W"`
	Items []string `short:"i" sep:"," help:"Owned item ids, in purchase order"`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	e, err := setup(g)
	if err != nil {
		return err
	}
	defer e.close()

	cards, err := deck.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	if len(cards) != hand.Size {
		return fmt.Errorf("need exactly %d cards, got %d", hand.Size, len(cards))
	}
	owned, err := ownedItems(c.Items)
	if err != nil {
		return err
	}

	res := scoring.Evaluate(cards, owned)
	fmt.Fprintf(os.Stdout, "Cards:      %s\n", strings.Join(cardLabels(cards), " "))
	fmt.Fprintf(os.Stdout, "Category:   %s\n", res.Category)
	fmt.Fprintf(os.Stdout, "Points:     %d (base %d)\n", res.Points, scoring.BasePoints(cards))
	fmt.Fprintf(os.Stdout, "Multiplier: ×%g\n", res.Breakdown.Final)
	fmt.Fprintf(os.Stdout, "Score:      %d\n", res.Score)
	return nil
}

func cardLabels(cards []deck.Card) []string {
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.String()
	}
	return labels
}

// MultipliersCmd prints the multiplier table
type MultipliersCmd struct {
	Items []string `short:"i" sep:"," help:"Owned item ids, in purchase order"`
}

func (c *MultipliersCmd) Run(g *Globals) error {
	owned, err := ownedItems(c.Items)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, tui.RenderMultipliers(scoring.Table(owned)))
	return nil
}

// CatalogCmd lists the item catalog
type CatalogCmd struct {
	JSON bool `help:"Print the catalog as JSON"`
}

func (c *CatalogCmd) Run(g *Globals) error {
	catalog := items.Catalog()
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tEFFECT")
	for _, t := range catalog {
		fmt.Fprintf(w, "%s\t%s %s\t%d\t%s\n", t.ID, t.Icon, t.Name, t.BasePrice, t.Desc)
	}
	return w.Flush()
}
