package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/go-sql-driver/mysql"
	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// BaseRepo holds the connection shared by all sqlstore repositories.
// Queries are written with ? placeholders and rebound for the active driver.
type BaseRepo struct {
	db database.DB
}

func (r *BaseRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *BaseRepo) rebind(query string) string {
	return r.db.GetDB().Rebind(query)
}

// in expands a slice argument into (?, ?, ...) and rebinds for the driver.
func (r *BaseRepo) in(query string, args ...interface{}) (string, []interface{}, error) {
	q, a, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, errors.NewInternalError("failed to build query", err)
	}
	return r.rebind(q), a, nil
}

// isUniqueViolation recognises duplicate key errors from every supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if stderrors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var liteErr *sqlite.Error
	if stderrors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

func checkAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if n == 0 {
		return errors.NewNotFoundError(what+" not found", nil)
	}
	return nil
}
