package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (g *Gui) databaseSelection(p *tview.Pages) tview.Primitive {
	list := tview.NewList()

	choose := func(database string) func() {
		return func() {
			p.AddPage("db-config", g.databaseConfigPage(p, database), true, false)
			p.SwitchToPage("db-config")
		}
	}

	list.AddItem("sqlite", "Easiest to use, creates a database file on disk, [::b]if you have no experience with databases, use this option", '1', choose("sqlite"))
	list.AddItem("MySql", "Requires a running instance of a MySql database, recommended if the tables are shared with other services", '2', choose("mysql"))
	list.AddItem("Postgres", "Requires a running instance of a Postgres database, recommended if the tables are shared with other services", '3', choose("postgres"))

	frame := tview.NewFrame(list)
	frame.SetBorder(true)
	frame.SetTitle(title + " - Choosing Database")
	frame.AddText("Please select below what database should hold the Pokedex tables", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - continue", false, tview.AlignLeft, tcell.ColorYellow)
	return frame
}
