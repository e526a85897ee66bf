package main

import (
	"os"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/FlagBrew/pokemon-commons/internal/models"
	"github.com/apex/log"
	"github.com/lrstanley/clix"
)

var (
	cli    = &clix.CLI[models.Flags]{}
	logger log.Interface
	db     *entsql.Driver
	cfg    *models.Config
)

func main() {
	ctx := setup()
	defer db.Close()

	if err := run(ctx, db, cfg.Schema.Prefix, cli.Flags.DryRun, os.Stdout); err != nil {
		db.Close()
		logger.WithError(err).Fatal("Failed to set up pokedex schema")
	}
}
