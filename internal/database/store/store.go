// Package store reads and writes Pokémon reference data through the tables
// declared by package pokedex.
//
// Relationships are never loaded implicitly. Every owned collection has its
// own query method, and Graph loads a species with all of them at once.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
)

type Store struct {
	conn    dialect.ExecQuerier
	drv     dialect.Driver // nil inside a transaction
	dialect string
	schema  *pokedex.Schema
}

// New returns a store bound to the tables of s.
func New(drv dialect.Driver, s *pokedex.Schema) *Store {
	return &Store{
		conn:    drv,
		drv:     drv,
		dialect: drv.Dialect(),
		schema:  s,
	}
}

// Schema returns the table definitions the store is bound to.
func (s *Store) Schema() *pokedex.Schema {
	return s.schema
}

// WithTx runs fn with a store whose statements all run in one transaction.
// The transaction is committed if fn returns nil and rolled back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	if s.drv == nil {
		return ErrTxStarted
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("store: starting transaction: %w", err)
	}

	defer func() {
		if v := recover(); v != nil {
			_ = tx.Rollback()
			panic(v)
		}
	}()

	if err := fn(&Store{conn: tx, dialect: s.dialect, schema: s.schema}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing transaction: %w", err)
	}
	return nil
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

func (s *Store) insert(ctx context.Context, label string, t *schema.Table, columns []string, values []any) error {
	query, args := s.builder().Insert(t.Name).Columns(columns...).Values(values...).Query()
	if err := s.conn.Exec(ctx, query, args, nil); err != nil {
		return wrapWriteError(label, err)
	}
	return nil
}

// insertID inserts a row into a table with an auto-increment id and returns
// the id the row was stored under. Explicit ids are accepted on every
// dialect; on Postgres the id sequence is moved past them afterwards.
func (s *Store) insertID(ctx context.Context, label string, t *schema.Table, id int, columns []string, values []any) (int, error) {
	if id != 0 {
		columns = append([]string{pokedex.ColumnID}, columns...)
		values = append([]any{id}, values...)
	}
	b := s.builder().Insert(t.Name).Columns(columns...).Values(values...)

	if s.dialect == dialect.Postgres {
		newID, err := s.insertReturning(ctx, label, b)
		if err != nil {
			return 0, err
		}
		if id != 0 {
			if err := s.syncSequence(ctx, label, t); err != nil {
				return 0, err
			}
		}
		return newID, nil
	}

	query, args := b.Query()
	var res sql.Result
	if err := s.conn.Exec(ctx, query, args, &res); err != nil {
		return 0, wrapWriteError(label, err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: creating %s: %w", label, err)
	}
	return int(newID), nil
}

func (s *Store) insertReturning(ctx context.Context, label string, b *entsql.InsertBuilder) (int, error) {
	query, args := b.Returning(pokedex.ColumnID).Query()
	rows := &entsql.Rows{}
	if err := s.conn.Query(ctx, query, args, rows); err != nil {
		return 0, wrapWriteError(label, err)
	}
	// A transaction cannot run its next statement while rows are open.
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, wrapWriteError(label, err)
		}
		return 0, fmt.Errorf("store: creating %s: no id returned", label)
	}
	var newID int
	if err := rows.Scan(&newID); err != nil {
		return 0, fmt.Errorf("store: creating %s: %w", label, err)
	}
	return newID, rows.Err()
}

// syncSequence sets the Postgres id sequence of t to the highest stored id,
// so rows created later without an id do not collide with explicit ones.
func (s *Store) syncSequence(ctx context.Context, label string, t *schema.Table) error {
	query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('"%[1]s"', '%[2]s'), (SELECT MAX("%[2]s") FROM "%[1]s"))`,
		t.Name, pokedex.ColumnID)
	if err := s.conn.Exec(ctx, query, []any{}, nil); err != nil {
		return fmt.Errorf("store: creating %s: syncing id sequence: %w", label, err)
	}
	return nil
}

// query runs the selector and calls scan once per row.
func (s *Store) query(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := s.conn.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
