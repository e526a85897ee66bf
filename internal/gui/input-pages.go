package gui

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"
	"unicode"

	"entgo.io/ent/dialect"
	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
	"github.com/FlagBrew/pokemon-commons/internal/models"
	"github.com/gdamore/tcell/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/rivo/tview"
	_ "modernc.org/sqlite"
)

var blackListedChars = []rune{
	'\'', '$', '%', '@', '#', '!', ';', ':', '/', '*', '?', '|', '>', '<', '&', '\\',
}

const formHelp = "[red]ESC - exit[-:-:-:-] [yellow] Enter - next input/submit [orange] (Shift+)Tab - switch inputs"

func (g *Gui) databaseConfigPage(p *tview.Pages, database string) tview.Primitive {
	form := tview.NewForm()

	var values []string
	var fieldNames []string
	connectionString := g.config.Database.ConnectionString

	switch database {
	case "sqlite":
		values = []string{defaultSqliteFile}
		fieldNames = []string{"File Name"}
		if file, ok := sqliteFile(connectionString); ok {
			values[0] = file
		}
		form.AddInputField(fieldNames[0], values[0], 20, func(textToCheck string, lastChar rune) bool {
			return !slices.Contains(blackListedChars, lastChar)
		}, func(text string) {
			values[0] = text
		})
	case "mysql", "postgres":
		values = make([]string, 5)
		fieldNames = []string{"Username", "Password", "Host", "Port", "Database"}

		if fields, ok := parseConnectionFields(database, connectionString); ok {
			values = []string{fields.User, fields.Password, fields.Host, fields.Port, fields.Database}
		}

		form.AddInputField(fieldNames[0], values[0], 20, nil, func(text string) {
			values[0] = text
		})
		form.AddPasswordField(fieldNames[1], values[1], 20, '*', func(text string) {
			values[1] = text
		})
		form.AddInputField(fieldNames[2], values[2], 20, nil, func(text string) {
			values[2] = text
		})
		form.AddInputField(fieldNames[3], values[3], 20, func(textToCheck string, lastChar rune) bool {
			if !unicode.IsDigit(lastChar) {
				return false
			}

			// Make sure the port is between 1 and 65535
			num, _ := strconv.Atoi(textToCheck)

			return num > 0 && num <= 65535
		}, func(text string) {
			values[3] = text
		})
		form.AddInputField(fieldNames[4], values[4], 20, nil, func(text string) {
			values[4] = text
		})
	}

	frame := tview.NewFrame(form)
	frame.SetBorder(true)
	frame.SetTitle(fmt.Sprintf("%s - Configuring Database: %s", title, database))
	resetFrame := func() {
		frame.Clear()
		frame.AddText("Please fill out the form below with the connection details of your database", true, tview.AlignLeft, tcell.ColorYellow)
		frame.AddText(formHelp, false, tview.AlignLeft, tcell.ColorYellow)
	}
	resetFrame()

	form.AddButton("Submit", func() {
		resetFrame()
		errors := []string{}

		for i, fieldName := range fieldNames {
			if values[i] == "" {
				errors = append(errors, fmt.Sprintf("%s: is required", fieldName))
			}
		}

		if len(errors) == 0 {
			var err error
			connectionString, err = buildConnectionString(database, values)
			if err != nil {
				errors = append(errors, err.Error())
			} else if err := pingDatabase(database, connectionString); err != nil {
				errors = append(errors, err.Error())
			}
		}

		if len(errors) > 0 {
			frame.AddText("Errors: ", true, tview.AlignLeft, tcell.ColorYellow)
			for _, v := range errors {
				frame.AddText(v, true, tview.AlignLeft, tcell.ColorRed)
			}
			return
		}

		g.config.Database = models.DatabaseConfig{
			DBType:           database,
			ConnectionString: connectionString,
		}

		p.AddPage("schema-config", g.schemaConfigPage(p), true, false)
		p.SwitchToPage("schema-config")
	})

	return frame
}

// buildConnectionString turns the form values into a connection string.
func buildConnectionString(database string, values []string) (string, error) {
	if database == "sqlite" {
		path := filepath.Clean(values[0])
		if _, err := os.Stat(path); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("File Name: an unknown error occurred, please check your input")
		}
		return sqliteConnectionString(path), nil
	}

	port, err := strconv.Atoi(values[3])
	if err != nil {
		return "", fmt.Errorf("Port: input is invalid")
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("Port: input is out of range (1 - 65535)")
	}

	if database == "postgres" {
		return postgresConnectionString(values[0], values[1], values[2], port, values[4]), nil
	}
	return mysqlConnectionString(values[0], values[1], values[2], port, values[4]), nil
}

func pingDatabase(database, connectionString string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if database == "postgres" {
		conn, err := pgx.Connect(ctx, connectionString)
		if err != nil {
			return fmt.Errorf("Postgres connection error: %w", err)
		}
		defer conn.Close(context.Background())
		if err := conn.Ping(ctx); err != nil {
			return fmt.Errorf("Postgres connection error: %w", err)
		}
		return nil
	}

	driverName, label := "sqlite", "Sqlite"
	if database == "mysql" {
		driverName, label = dialect.MySQL, "MySQL"
	}
	db, err := sql.Open(driverName, connectionString)
	if err != nil {
		return fmt.Errorf("%s connection error: %w", label, err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s connection error: %w", label, err)
	}
	return nil
}

func (g *Gui) schemaConfigPage(p *tview.Pages) tview.Primitive {
	form := tview.NewForm()
	frame := tview.NewFrame(form)

	prefix := g.config.Schema.Prefix

	resetFrame := func() {
		frame.Clear()
		frame.AddText("Choose the prefix every table name starts with, leave it empty to use the bare names", true, tview.AlignLeft, tcell.ColorYellow)
		frame.AddText(formHelp, false, tview.AlignLeft, tcell.ColorYellow)
		frame.AddText(fmt.Sprintf("Species table: %s", pokedex.Naming{Prefix: prefix}.Table(pokedex.LabelPokemon)), true, tview.AlignLeft, tcell.ColorGreen)
	}
	resetFrame()

	form.AddTextView("Prefix Info", fmt.Sprintf(`The prefix lets several deployments keep their own copy of the tables in one database.
It must start with a lowercase letter, may contain lowercase letters, digits and underscores, and be at most %d characters long.`, pokedex.MaxPrefixLen), 0, 0, true, true)
	form.AddInputField("Prefix", prefix, 24, func(textToCheck string, lastChar rune) bool {
		return len(textToCheck) <= pokedex.MaxPrefixLen && (unicode.IsLower(lastChar) || unicode.IsDigit(lastChar) || lastChar == '_')
	}, func(text string) {
		prefix = text
		resetFrame()
	})

	form.AddButton("Submit", func() {
		resetFrame()
		if err := (pokedex.Naming{Prefix: prefix}).Validate(); err != nil {
			frame.AddText("Errors: ", true, tview.AlignLeft, tcell.ColorYellow)
			frame.AddText(err.Error(), true, tview.AlignLeft, tcell.ColorRed)
			return
		}

		g.config.Schema = models.SchemaConfig{Prefix: prefix}
		p.AddPage("confirm", g.confirmationPage(p), true, false)
		p.SwitchToPage("confirm")
	})

	frame.SetBorder(true)
	frame.SetTitle(title + " - Configuring Table Names")

	return frame
}
