package store

import (
	"errors"
	"fmt"
	"strings"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrTxStarted is returned by WithTx when called on a transactional store.
var ErrTxStarted = errors.New("store: cannot start a transaction within a transaction")

// NotFoundError is returned when a requested row does not exist.
type NotFoundError struct {
	label string
	id    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("store: %s not found (id=%v)", e.label, e.id)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e)
}

// ValidationError is returned when a value is rejected before it reaches the
// database, e.g. a slot outside its enum.
type ValidationError struct {
	Name string
	err  error
}

func (e *ValidationError) Error() string {
	return e.err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// ConstraintKind tells which database constraint rejected a write.
type ConstraintKind int

const (
	ConstraintUnknown ConstraintKind = iota
	ConstraintUnique
	ConstraintForeignKey
	ConstraintCheck
	ConstraintNotNull
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintUnique:
		return "unique"
	case ConstraintForeignKey:
		return "foreign key"
	case ConstraintCheck:
		return "check"
	case ConstraintNotNull:
		return "not null"
	}
	return "unknown"
}

// ConstraintError wraps a constraint violation reported by the database.
type ConstraintError struct {
	Kind  ConstraintKind
	label string
	wrap  error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("store: %s constraint failed on %s: %v", e.Kind, e.label, e.wrap)
}

func (e *ConstraintError) Unwrap() error {
	return e.wrap
}

// IsConstraintError returns true if the error is a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConstraintError
	return errors.As(err, &e)
}

// ConstraintKindOf returns the kind of the wrapped constraint violation, or
// ConstraintUnknown if err is not a ConstraintError.
func ConstraintKindOf(err error) ConstraintKind {
	var e *ConstraintError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ConstraintUnknown
}

// Postgres SQLSTATE and MySQL error numbers not covered by sqlgraph.
const (
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"

	mysqlBadNull       = 1048
	mysqlNoDefault     = 1364
	mysqlCheckViolated = 3819
)

func wrapWriteError(label string, err error) error {
	if kind := constraintKind(err); kind != ConstraintUnknown {
		return &ConstraintError{Kind: kind, label: label, wrap: err}
	}
	return fmt.Errorf("store: creating %s: %w", label, err)
}

func constraintKind(err error) ConstraintKind {
	switch {
	case sqlgraph.IsUniqueConstraintError(err):
		return ConstraintUnique
	case sqlgraph.IsForeignKeyConstraintError(err):
		return ConstraintForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCheckViolation:
			return ConstraintCheck
		case pgNotNullViolation:
			return ConstraintNotNull
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlCheckViolated:
			return ConstraintCheck
		case mysqlBadNull, mysqlNoDefault:
			return ConstraintNotNull
		}
	}

	// sqlite reports constraint violations only through the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "CHECK constraint failed"):
		return ConstraintCheck
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return ConstraintNotNull
	}
	return ConstraintUnknown
}
