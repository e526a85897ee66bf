package gui

import (
	"fmt"

	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (g *Gui) introPage(p *tview.Pages) tview.Primitive {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	textView.SetText(`Welcome to Pokemon Commons, this wizard sets up the database that will hold the Pokedex reference tables (species, forms, abilities, types, egg groups, regional dexes and mega stones).

You will choose a database, enter its connection details and pick the prefix every table name starts with, so several deployments can share one database.

[::b]It is strongly recommended that you maximize this terminal window to avoid text being cut-off[-:-:-:-]

If you would like to exit the wizard early, please press the [red]esc key[-:-:-:-], otherwise please press [yellow]enter[-:-:-:-] to continue

`)

	textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter:
			p.SwitchToPage("database-type")
		}
		return event
	})

	frame := tview.NewFrame(textView)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - continue", false, tview.AlignLeft, tcell.ColorYellow)
	frame.SetBorder(true).SetTitle(title)
	return frame
}

func (g *Gui) confirmationPage(p *tview.Pages) tview.Primitive {
	form := tview.NewForm()

	prefix := g.config.Schema.Prefix
	prefixText := fmt.Sprintf(`Prefix: %s
Example tables: %s, %s`, prefix,
		pokedex.Naming{Prefix: prefix}.Table(pokedex.LabelPokemon),
		pokedex.Naming{Prefix: prefix}.Association(pokedex.LabelPokemon, pokedex.AssociationPokemonEggGroup))
	if prefix == "" {
		prefixText = fmt.Sprintf(`Prefix: (none)
Example tables: %s, %s`,
			pokedex.Naming{}.Table(pokedex.LabelPokemon),
			pokedex.Naming{}.Association(pokedex.LabelPokemon, pokedex.AssociationPokemonEggGroup))
	}

	form.AddTextView("Database Settings", describeConnection(g.config.Database.DBType, g.config.Database.ConnectionString), 0, 0, true, true)
	form.AddTextView("Table Names", prefixText, 0, 0, true, true)

	form.AddButton("Save", func() {
		g.Stop()
	})
	form.AddButton("Edit", func() {
		p.SwitchToPage("database-type")
	})

	frame := tview.NewFrame(form)
	frame.AddText("Please review the details below, and if all is good, press enter on the save button, otherwise, press the edit button to go back to the first page (with your data saved of course)", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - submit [orange] (Shift+)Tab - switch buttons", false, tview.AlignLeft, tcell.ColorYellow)
	frame.SetBorder(true)
	frame.SetTitle(title + " - Settings Review")

	return frame
}
