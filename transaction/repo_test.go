package transaction

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"ledger/transaction/options"
)

func TestInMemoryRepo(t *testing.T) {
	s := NewSuite(t)
	suite.Run(t, s)
}

func NewSuite(t *testing.T) *Suite {
	return &Suite{
		Assertions: require.New(t),
	}
}

type Suite struct {
	suite.Suite
	*require.Assertions // default to require behavior
	repo                Repo
	transactions        []*Transaction
}

func (s *Suite) SetupTest() {
	s.repo = NewInMemoryRepo()
	s.transactions = nil
	s.createTransactions(10)
}

func (s *Suite) createTransactions(length int) {
	for i := 1; i <= length; i++ {
		txn := New(
			fmt.Sprintf("acc_from%02d", i),
			fmt.Sprintf("acc_to%02d", i),
			decimal.NewFromInt32(int32(i*100)),
		)
		if i%2 == 0 {
			txn.MarkCompleted()
		} else {
			txn.MarkFailed("Insufficient funds")
		}

		s.NoError(s.repo.Save(txn))
		s.transactions = append(s.transactions, txn)
	}
}

func (s *Suite) TestFindByID() {
	want := s.transactions[1]
	got, err := s.repo.FindByID(want.ID)
	s.NoError(err)

	s.Equal(want, got)
}

func (s *Suite) TestFindByIDMissing() {
	_, err := s.repo.FindByID("txn_missing")
	s.ErrorIs(err, ErrNotFound)
}

func (s *Suite) TestExists() {
	s.True(s.repo.Exists(s.transactions[0].ID))
	s.False(s.repo.Exists("txn_missing"))
}

func (s *Suite) TestFindAll() {
	got, err := s.repo.Find()
	s.NoError(err)

	s.Len(got, len(s.transactions))
}

func (s *Suite) TestFindByIDs() {
	want := []*Transaction{s.transactions[0], s.transactions[3]}

	opts := options.NewTransactionOptions().SetIDs(want[0].ID, want[1].ID)
	got, err := s.repo.Find(opts)
	s.NoError(err)

	s.ElementsMatch(want, got)
}

func (s *Suite) TestFindByStatus() {
	opts := options.NewTransactionOptions().SetStatuses(string(StatusFailed))
	got, err := s.repo.Find(opts)
	s.NoError(err)

	s.Len(got, 5)
	for _, txn := range got {
		s.Equal(StatusFailed, txn.Status)
	}
}

func (s *Suite) TestFindByAmountRange() {
	low := decimal.NewFromInt32(300)
	high := decimal.NewFromInt32(500)

	opts := options.NewTransactionOptions().SetAmountRange(
		&options.DecimalRange{Low: &low, High: &high},
	)
	got, err := s.repo.Find(opts)
	s.NoError(err)

	s.Len(got, 3)
	for _, txn := range got {
		s.True(txn.Amount.GreaterThanOrEqual(low))
		s.True(txn.Amount.LessThanOrEqual(high))
	}
}

func (s *Suite) TestFindByTimeRange() {
	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	opts := options.NewTransactionOptions().SetTimeRange(
		&options.TimeRange{Low: &past, High: &future},
	)
	got, err := s.repo.Find(opts)
	s.NoError(err)
	s.Len(got, len(s.transactions))

	ancient := past.Add(-time.Hour)
	opts = options.NewTransactionOptions().SetTimeRange(
		&options.TimeRange{High: &ancient},
	)
	got, err = s.repo.Find(opts)
	s.NoError(err)
	s.Empty(got)
}

func (s *Suite) TestStatusTransitionIsOneShot() {
	txn := New("acc_a", "acc_b", decimal.NewFromInt32(100))
	s.Equal(StatusPending, txn.Status)

	txn.MarkCompleted()
	s.Equal(StatusCompleted, txn.Status)

	// terminal states never reverse
	txn.MarkFailed("too late")
	s.Equal(StatusCompleted, txn.Status)
	s.Empty(txn.ErrorMessage)
}
