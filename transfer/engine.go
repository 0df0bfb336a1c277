// Package transfer implements atomic fund transfers between accounts.
package transfer

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ledger/account"
	"ledger/money"
	"ledger/transaction"
)

// ErrInsufficientFunds signals that the source balance was smaller than the
// transfer amount at commit time. No state was mutated.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Engine executes fund transfers. Each transfer locks the two participating
// accounts in ascending id order, so transfers on disjoint account pairs run
// fully in parallel while opposite-direction transfers on the same pair can
// never deadlock.
type Engine struct {
	accounts     account.Repo
	transactions transaction.Repo
	logger       *zap.Logger
}

func NewEngine(accounts account.Repo, transactions transaction.Repo, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		accounts:     accounts,
		transactions: transactions,
		logger:       logger,
	}
}

// Transfer moves amount from one account to the other, all or nothing.
//
// Validation and account lookup happen before any lock is taken. The balance
// check happens again under both locks, so a concurrent transfer can never
// drive a balance negative. A transfer from an account to itself is a no-op
// that still completes.
//
// Failed attempts are recorded in the transaction store with a failed status
// before the error is returned, so there is an audit trail for them too.
func (e *Engine) Transfer(fromID, toID string, amount decimal.Decimal) (*transaction.Transaction, error) {
	if err := money.ValidateAmount(amount); err != nil {
		return nil, err
	}

	from, err := e.accounts.FindByID(fromID)
	if err != nil {
		return nil, err
	}
	to, err := e.accounts.FindByID(toID)
	if err != nil {
		return nil, err
	}

	txn := transaction.New(fromID, toID, amount)

	if err := e.execute(from, to, amount, txn); err != nil {
		e.logger.Warn("transfer failed",
			zap.String("transaction_id", txn.ID),
			zap.String("from", fromID),
			zap.String("to", toID),
			zap.String("amount", amount.StringFixed(2)),
			zap.Error(err),
		)
		return nil, err
	}

	if err := e.transactions.Save(txn); err != nil {
		return nil, err
	}

	e.logger.Info("transfer completed",
		zap.String("transaction_id", txn.ID),
		zap.String("from", fromID),
		zap.String("to", toID),
		zap.String("amount", amount.StringFixed(2)),
	)
	return txn, nil
}

// execute runs the critical section. LockPair acquires both locks in
// ascending id order (once, for a self-transfer) and the deferred release
// unlocks in reverse order on every exit path, including panics.
func (e *Engine) execute(from, to *account.Account, amount decimal.Decimal, txn *transaction.Transaction) error {
	release := account.LockPair(from, to)
	defer release()

	if from.Balance.LessThan(amount) {
		txn.MarkFailed("Insufficient funds")
		if err := e.transactions.Save(txn); err != nil {
			e.logger.Error("recording failed transaction", zap.String("transaction_id", txn.ID), zap.Error(err))
		}
		return fmt.Errorf("account %s has balance %s, need %s: %w",
			from.ID, from.Balance.StringFixed(2), amount.StringFixed(2), ErrInsufficientFunds)
	}

	from.Debit(amount)
	to.Credit(amount)

	txn.MarkCompleted()
	return nil
}

// GetTransaction returns a previously recorded transfer attempt.
func (e *Engine) GetTransaction(id string) (*transaction.Transaction, error) {
	return e.transactions.FindByID(id)
}
