package main

import (
	"context"
	"os"

	"github.com/FlagBrew/pokemon-commons/internal/database"
	"github.com/FlagBrew/pokemon-commons/internal/utils"
	"github.com/apex/log"
)

func setup() context.Context {
	cli.Parse()
	logger = cli.Logger

	if cli.Flags.Mode == "docker" {
		// Containers collect stderr, keep it machine readable.
		cli.Logger = utils.NewLogger(log.InfoLevel, cli.Debug, os.Stderr)
		logger = cli.Logger
	}

	ctx := log.NewContext(context.Background(), logger)
	cfg = utils.Setup(ctx, cli.Flags.Mode, cli.Flags.Config)

	var err error
	db, err = database.Open(ctx, &cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}

	return ctx
}
