package main

import (
	"context"
	"io"

	"entgo.io/ent/dialect"
	"github.com/FlagBrew/pokemon-commons/internal/database"
	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
	"github.com/apex/log"
)

// run builds the schema for prefix and applies it to drv, or writes its DDL
// to out when dryRun is set.
func run(ctx context.Context, drv dialect.Driver, prefix string, dryRun bool, out io.Writer) error {
	s, err := pokedex.New(pokedex.WithPrefix(prefix))
	if err != nil {
		return err
	}

	if dryRun {
		log.FromContext(ctx).WithField("prefix", prefix).Info("writing pokedex schema DDL")
		return database.WriteDDL(ctx, drv, s, out)
	}
	return database.Apply(ctx, drv, s)
}
