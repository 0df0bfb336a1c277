package account

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a balance-holding account.
// The embedded mutex coordinates concurrent balance mutations; it is never
// exposed directly — two-account locking goes through LockPair so the
// ordering discipline stays in one place.
type Account struct {
	ID        string          `db:"id" json:"id"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`

	mu sync.Mutex
}

func New(initialBalance decimal.Decimal) *Account {
	return &Account{
		ID:        newID(),
		Balance:   initialBalance,
		CreatedAt: time.Now().UTC(),
	}
}

// newID returns a unique account id, e.g. "acc_1f8e2b9c04ad"
func newID() string {
	u := uuid.New()
	return "acc_" + hex.EncodeToString(u[:])[:12]
}

// Debit subtracts amount from the balance.
// The caller must hold the account's lock via LockPair.
func (a *Account) Debit(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
}

// Credit adds amount to the balance.
// The caller must hold the account's lock via LockPair.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// LockPair acquires the locks of both accounts in ascending id order and
// returns a release func that unlocks them in reverse acquisition order.
// Acquiring in a fixed global order prevents deadlock between two transfers
// that touch the same pair of accounts in opposite directions.
//
// When a and b are the same account only one lock exists; it is acquired
// exactly once (taking a non-reentrant mutex twice would self-deadlock).
func LockPair(a, b *Account) (release func()) {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}

	first, second := a, b
	if second.ID < first.ID {
		first, second = b, a
	}

	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
