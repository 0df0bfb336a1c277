package transfer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ledger/account"
	"ledger/money"
	"ledger/transaction"
)

func TestEngine(t *testing.T) {
	cases := map[string]func(
		t *testing.T,
		manager *account.Manager,
		engine *Engine,
		transactions transaction.Repo,
	){
		"success: completed transfer moves funds":         testSuccessfulTransfer,
		"success: exact-balance transfer drains account":  testExactBalanceTransfer,
		"success: sequential transfers accumulate":        testSequentialTransfers,
		"success: self-transfer is a completed no-op":     testSelfTransfer,
		"fail: insufficient funds leaves state unchanged": testInsufficientFunds,
		"fail: non-positive or over-precision amount":     testInvalidAmount,
		"fail: unknown account on either side":            testAccountNotFound,
		"audit: failed attempts are recorded":             testFailedTransferRecorded,
	}
	for description, fn := range cases {
		t.Run(description, func(t *testing.T) {
			manager, engine, transactions := testSetup(t)
			fn(t, manager, engine, transactions)
		})
	}
}

func testSetup(t *testing.T) (*account.Manager, *Engine, transaction.Repo) {
	t.Helper()

	accounts := account.NewInMemoryRepo()
	transactions := transaction.NewInMemoryRepo()
	manager := account.NewManager(accounts, nil)
	engine := NewEngine(accounts, transactions, nil)

	return manager, engine, transactions
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testSuccessfulTransfer(t *testing.T, manager *account.Manager, engine *Engine, _ transaction.Repo) {
	a, err := manager.CreateAccount(dec("1000.00"))
	require.NoError(t, err)
	b, err := manager.CreateAccount(dec("500.00"))
	require.NoError(t, err)

	txn, err := engine.Transfer(a.ID, b.ID, dec("300.00"))
	require.NoError(t, err)
	require.Equal(t, transaction.StatusCompleted, txn.Status)
	require.Equal(t, a.ID, txn.FromAccountID)
	require.Equal(t, b.ID, txn.ToAccountID)

	require.Equal(t, "700.00", a.Balance.StringFixed(2))
	require.Equal(t, "800.00", b.Balance.StringFixed(2))

	got, err := engine.GetTransaction(txn.ID)
	require.NoError(t, err)
	require.Equal(t, txn, got)
}

func testExactBalanceTransfer(t *testing.T, manager *account.Manager, engine *Engine, _ transaction.Repo) {
	a, err := manager.CreateAccount(dec("500.00"))
	require.NoError(t, err)
	b, err := manager.CreateAccount(dec("0.00"))
	require.NoError(t, err)

	txn, err := engine.Transfer(a.ID, b.ID, dec("500.00"))
	require.NoError(t, err)
	require.Equal(t, transaction.StatusCompleted, txn.Status)

	require.Equal(t, "0.00", a.Balance.StringFixed(2))
	require.Equal(t, "500.00", b.Balance.StringFixed(2))
}

func testSequentialTransfers(t *testing.T, manager *account.Manager, engine *Engine, _ transaction.Repo) {
	a, err := manager.CreateAccount(dec("1000.00"))
	require.NoError(t, err)
	b, err := manager.CreateAccount(dec("500.00"))
	require.NoError(t, err)
	c, err := manager.CreateAccount(dec("0.00"))
	require.NoError(t, err)

	_, err = engine.Transfer(a.ID, b.ID, dec("200.00"))
	require.NoError(t, err)
	_, err = engine.Transfer(b.ID, c.ID, dec("300.00"))
	require.NoError(t, err)
	_, err = engine.Transfer(a.ID, c.ID, dec("100.00"))
	require.NoError(t, err)

	require.Equal(t, "700.00", a.Balance.StringFixed(2))
	require.Equal(t, "400.00", b.Balance.StringFixed(2))
	require.Equal(t, "400.00", c.Balance.StringFixed(2))
}

func testSelfTransfer(t *testing.T, manager *account.Manager, engine *Engine, _ transaction.Repo) {
	a, err := manager.CreateAccount(dec("1000.00"))
	require.NoError(t, err)

	txn, err := engine.Transfer(a.ID, a.ID, dec("100.00"))
	require.NoError(t, err)
	require.Equal(t, transaction.StatusCompleted, txn.Status)
	require.Equal(t, "1000.00", a.Balance.StringFixed(2))
}

func testInsufficientFunds(t *testing.T, manager *account.Manager, engine *Engine, _ transaction.Repo) {
	a, err := manager.CreateAccount(dec("100.00"))
	require.NoError(t, err)
	b, err := manager.CreateAccount(dec("0.00"))
	require.NoError(t, err)

	_, err = engine.Transfer(a.ID, b.ID, dec("200.00"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	require.Equal(t, "100.00", a.Balance.StringFixed(2))
	require.Equal(t, "0.00", b.Balance.StringFixed(2))
}

func testInvalidAmount(t *testing.T, manager *account.Manager, engine *Engine, _ transaction.Repo) {
	a, err := manager.CreateAccount(dec("1000.00"))
	require.NoError(t, err)
	b, err := manager.CreateAccount(dec("0.00"))
	require.NoError(t, err)

	for _, amount := range []string{"-100.00", "0.00", "10.001"} {
		_, err = engine.Transfer(a.ID, b.ID, dec(amount))
		require.ErrorIs(t, err, money.ErrInvalidAmount, amount)
	}

	require.Equal(t, "1000.00", a.Balance.StringFixed(2))
	require.Equal(t, "0.00", b.Balance.StringFixed(2))
}

func testAccountNotFound(t *testing.T, manager *account.Manager, engine *Engine, _ transaction.Repo) {
	a, err := manager.CreateAccount(dec("1000.00"))
	require.NoError(t, err)

	_, err = engine.Transfer("acc_missing", a.ID, dec("100.00"))
	require.ErrorIs(t, err, account.ErrNotFound)

	_, err = engine.Transfer(a.ID, "acc_missing", dec("100.00"))
	require.ErrorIs(t, err, account.ErrNotFound)

	require.Equal(t, "1000.00", a.Balance.StringFixed(2))
}

func testFailedTransferRecorded(t *testing.T, manager *account.Manager, engine *Engine, transactions transaction.Repo) {
	a, err := manager.CreateAccount(dec("100.00"))
	require.NoError(t, err)
	b, err := manager.CreateAccount(dec("0.00"))
	require.NoError(t, err)

	_, err = engine.Transfer(a.ID, b.ID, dec("200.00"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	got, err := transactions.Find()
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, transaction.StatusFailed, got[0].Status)
	require.Equal(t, "Insufficient funds", got[0].ErrorMessage)
}

func TestTransactionIDUniqueness(t *testing.T) {
	manager, engine, _ := testSetup(t)

	a, err := manager.CreateAccount(dec("1000.00"))
	require.NoError(t, err)
	b, err := manager.CreateAccount(dec("0.00"))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		txn, err := engine.Transfer(a.ID, b.ID, dec("1.00"))
		require.NoError(t, err)
		require.False(t, seen[txn.ID])
		seen[txn.ID] = true
	}
}
