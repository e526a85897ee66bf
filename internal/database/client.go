package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
	"github.com/FlagBrew/pokemon-commons/internal/models"
	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open connects to the database described by cfg.
func Open(ctx context.Context, cfg *models.DatabaseConfig) (*entsql.Driver, error) {
	logger := log.FromContext(ctx).WithField("db_type", cfg.DBType)

	switch cfg.DBType {
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection string: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		logger.Debug("opened postgres pool")
		return entsql.OpenDB(dialect.Postgres, stdlib.OpenDBFromPool(pool)), nil
	case "mysql":
		db, err := sql.Open(dialect.MySQL, cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mysql: %w", err)
		}
		logger.Debug("opened mysql database")
		return entsql.OpenDB(dialect.MySQL, db), nil
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		logger.Debug("opened sqlite database")
		return entsql.OpenDB(dialect.SQLite, db), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DBType)
	}
}

// Apply creates the tables of s that do not exist yet and adds missing
// columns and indexes to the ones that do. Columns and indexes it does not
// know about are left in place.
func Apply(ctx context.Context, drv dialect.Driver, s *pokedex.Schema) error {
	logger := log.FromContext(ctx).WithField("prefix", s.Naming().Prefix)
	logger.Info("applying pokedex schema")

	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}
	if err := m.Create(ctx, s.Tables()...); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logger.WithField("tables", len(s.Tables())).Info("pokedex schema applied")
	return nil
}

// WriteDDL writes the statements Apply would execute against drv to w,
// without executing them.
func WriteDDL(ctx context.Context, drv dialect.Driver, s *pokedex.Schema, w io.Writer) error {
	m, err := schema.NewMigrate(&schema.WriteDriver{Driver: drv, Writer: w})
	if err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}
	if err := m.Create(ctx, s.Tables()...); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}
