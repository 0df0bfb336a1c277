package transaction

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transaction. The only transitions are
// pending → completed and pending → failed; both are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transaction records one transfer attempt between two accounts. Except for
// the single status transition the record is immutable.
type Transaction struct {
	ID            string          `db:"id" json:"id"`
	FromAccountID string          `db:"from_account_id" json:"from_account_id"`
	ToAccountID   string          `db:"to_account_id" json:"to_account_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Status        Status          `db:"status" json:"status"`
	ErrorMessage  string          `db:"error_message" json:"error_message,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

func New(fromAccountID, toAccountID string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:            newID(),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

// newID returns a unique transaction id, e.g. "txn_9c04ad1f8e2b"
func newID() string {
	u := uuid.New()
	return "txn_" + hex.EncodeToString(u[:])[:12]
}

// MarkCompleted transitions the transaction from pending to completed.
// Calls on an already-terminal transaction are ignored.
func (t *Transaction) MarkCompleted() {
	if t.Status == StatusPending {
		t.Status = StatusCompleted
	}
}

// MarkFailed transitions the transaction from pending to failed and records
// the reason. Calls on an already-terminal transaction are ignored.
func (t *Transaction) MarkFailed(reason string) {
	if t.Status == StatusPending {
		t.Status = StatusFailed
		t.ErrorMessage = reason
	}
}
