package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"withargs" help:"Play a game in the terminal"`
	Show        ShowCmd          `cmd:"" help:"Print a saved game"`
	Classify    ClassifyCmd      `cmd:"" help:"Classify and score five cards"`
	Multipliers MultipliersCmd   `cmd:"" help:"Print the multiplier table for a set of items"`
	Catalog     CatalogCmd       `cmd:"" help:"List every item in the shop catalog"`
	Simulate    SimulateCmd      `cmd:"" help:"Play automated games and report statistics"`
	Serve       ServeCmd         `cmd:"" help:"Run the HTTP and websocket server"`
	History     HistoryCmd       `cmd:"" help:"Export and read game histories"`
}

// Globals are flags shared by every command.
type Globals struct {
	Config  string `short:"c" default:"wildpoker.hcl" type:"path" help:"Configuration file (missing is fine)"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `name:"no-color" help:"Disable coloured output"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wildpoker"),
		kong.Description("Wild-card poker solitaire: score five-card hands against rising round thresholds"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
