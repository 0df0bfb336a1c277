package account

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ledger/money"
)

// Manager handles the account lifecycle outside of transfers: creation,
// lookup, and direct balance updates.
type Manager struct {
	repo   Repo
	logger *zap.Logger
}

func NewManager(repo Repo, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{repo: repo, logger: logger}
}

// CreateAccount allocates a fresh account with the given starting balance.
// The balance must be non-negative with at most two decimal places.
func (m *Manager) CreateAccount(initialBalance decimal.Decimal) (*Account, error) {
	if err := money.ValidateBalance(initialBalance); err != nil {
		return nil, err
	}

	a := New(initialBalance)
	if err := m.repo.Save(a); err != nil {
		return nil, err
	}

	m.logger.Info("created account",
		zap.String("id", a.ID),
		zap.String("balance", a.Balance.StringFixed(2)),
	)
	return a, nil
}

func (m *Manager) GetAccount(id string) (*Account, error) {
	return m.repo.FindByID(id)
}

// SetBalance overwrites the account's balance. The write happens under the
// account's lock so it serializes with concurrent transfers touching the
// same account.
func (m *Manager) SetBalance(id string, balance decimal.Decimal) (*Account, error) {
	if err := money.ValidateBalance(balance); err != nil {
		return nil, err
	}

	a, err := m.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.Balance = balance
	a.mu.Unlock()

	if err := m.repo.Save(a); err != nil {
		return nil, err
	}

	m.logger.Info("updated balance",
		zap.String("id", a.ID),
		zap.String("balance", balance.StringFixed(2)),
	)
	return a, nil
}
