package gui

import (
	"os"

	"github.com/FlagBrew/pokemon-commons/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const title = "Pokemon Commons"

type Gui struct {
	app    *tview.Application
	config *models.Config
}

// New builds the set-up wizard. Answers are written into config.
func New(config *models.Config) *Gui {
	app := &Gui{
		app:    tview.NewApplication(),
		config: &models.Config{},
	}

	if config != nil {
		app.config = config
	}

	app.app.EnableMouse(true)

	app.Init()

	return app
}

func (g *Gui) Init() {
	pages := tview.NewPages()
	pages.AddPage("setup", g.introPage(pages), true, true)
	pages.AddPage("database-type", g.databaseSelection(pages), true, false)

	pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			g.app.Stop()
			os.Exit(0)
		}
		return event
	})

	g.app.SetRoot(pages, true)
}

func (g *Gui) Start() error {
	return g.app.Run()
}

func (g *Gui) Stop() {
	g.app.Stop()
}
