package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/euchre-tournament/models"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, so every write can
// join a caller's transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// constraintError maps a unique or foreign key violation to the matching
// sentinel; anything else is returned unchanged.
func constraintError(err error, unique, foreignKey error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "23505":
		if unique != nil {
			return fmt.Errorf("%w: %s", unique, pqErr.Constraint)
		}
	case "23503":
		if foreignKey != nil {
			return fmt.Errorf("%w: %s", foreignKey, pqErr.Constraint)
		}
	}
	return err
}

// pq.Array scans INT[] columns into []int64.
func idsFromArray(in []int64) []models.EntityID {
	out := make([]models.EntityID, len(in))
	for i, v := range in {
		out[i] = models.EntityID(v)
	}
	return out
}

func idsToArray(in []models.EntityID) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
