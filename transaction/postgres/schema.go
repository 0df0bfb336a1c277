package postgres

import "github.com/jmoiron/sqlx"

func createTransactionsTable(db *sqlx.DB) error {
	var schema = `
	CREATE TABLE IF NOT EXISTS transaction (
	id varchar(32) PRIMARY KEY,
	from_account_id varchar(32) NOT NULL,
	to_account_id varchar(32) NOT NULL,
	amount NUMERIC(12, 2) NOT NULL,
	status varchar(16) NOT NULL,
	error_message text NOT NULL DEFAULT '',
	created_at timestamp DEFAULT now()
	                         )
	`
	_, err := db.Exec(schema)
	if err != nil {
		return err
	}
	return nil
}
