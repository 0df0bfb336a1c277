package transaction

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"ledger/transaction/options"
)

var _ Repo = (*PostgresRepo)(nil)

// PostgresRepo is a database-backed Repo used as a queryable archive of
// transfer attempts. The in-memory engine does not depend on it; it exists
// so the audit trail can outlive a single query session.
type PostgresRepo struct {
	db *sqlx.DB
}

func NewPostgresRepo(db *sqlx.DB) (*PostgresRepo, error) {
	r := &PostgresRepo{db: db}

	return r, nil
}

func (r *PostgresRepo) Save(transaction *Transaction) error {
	_, err := r.db.NamedExec(
		`INSERT INTO transaction (id, from_account_id, to_account_id, amount, status, error_message, created_at)
		VALUES (:id, :from_account_id, :to_account_id, :amount, :status, :error_message, :created_at)
		ON CONFLICT (id) DO UPDATE SET status = :status, error_message = :error_message`,
		transaction,
	)

	return err
}

func (r *PostgresRepo) FindByID(id string) (*Transaction, error) {
	var result Transaction
	err := r.db.Get(&result, "SELECT * FROM transaction WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *PostgresRepo) Exists(id string) bool {
	var exists bool
	err := r.db.Get(&exists, "SELECT EXISTS (SELECT 1 FROM transaction WHERE id = $1)", id)
	if err != nil {
		return false
	}
	return exists
}

// Executes a Find operation and returns a list of Transactions
// The `transactionOptions` can be used to specify options for the operation
func (r *PostgresRepo) Find(transactionOptions ...*options.TransactionOptions) ([]*Transaction, error) {
	var result []*Transaction
	// build query
	query := "SELECT * FROM transaction"

	if len(transactionOptions) == 0 {
		err := r.db.Select(&result, query)
		if err != nil {
			return nil, err
		}

		return result, nil
	}

	opt := transactionOptions[0]
	filters := make(map[string]interface{})
	if len(opt.IDs) > 0 {
		filters["id"] = opt.IDs
	}
	if len(opt.Statuses) > 0 {
		filters["status"] = opt.Statuses
	}
	if opt.Amount != nil {
		filters["amount"] = opt.Amount
	}

	if opt.Timestamp != nil {
		filters["created_at"] = opt.Timestamp
	}

	var where []string
	var args []interface{}
	namedParams := make(map[string]interface{})

	updateQueryParams := func(stmt, key string, value interface{}) {
		where = append(where, stmt)
		args = append(args, value)
		namedParams[key] = value
	}

	for columnName, arg := range filters {
		switch v := arg.(type) {
		case options.Range:
			var key string

			from, ok := v.From()
			if ok {
				key = columnName + "_from"
				fromStmt := fmt.Sprintf("%s >= :%s", columnName, key)
				updateQueryParams(fromStmt, key, from)
			}
			to, ok := v.To()
			if ok {
				key = columnName + "_to"
				toStmt := fmt.Sprintf("%s <= :%s", columnName, key)
				updateQueryParams(toStmt, key, to)
			}

		default:
			stmt := fmt.Sprintf("%s in (:%s)", columnName, columnName)
			updateQueryParams(stmt, columnName, v)
		}
	}

	if len(where) > 0 {
		query = fmt.Sprintf("%s WHERE %s",
			query,
			strings.Join(where, " AND "),
		)
	}

	query, args, err := sqlx.Named(query, namedParams)
	if err != nil {
		return nil, err
	}
	query, args, err = sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)
	err = r.db.Select(&result, query, args...)
	if err != nil {
		return nil, err
	}

	return result, nil
}
