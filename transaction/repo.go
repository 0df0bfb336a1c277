package transaction

import (
	"errors"
	"fmt"
	"sync"

	"ledger/transaction/options"
)

// ErrNotFound signals a lookup for a transaction id that does not exist.
var ErrNotFound = errors.New("transaction not found")

// Data store abstraction for querying transactions
type Repo interface {
	Save(*Transaction) error
	FindByID(id string) (*Transaction, error)
	Exists(id string) bool
	Find(opts ...*options.TransactionOptions) ([]*Transaction, error)
}

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps transactions in a mutex-guarded map for the lifetime of
// the process.
type InMemoryRepo struct {
	mu           sync.RWMutex
	transactions map[string]*Transaction
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{transactions: make(map[string]*Transaction)}
}

func (r *InMemoryRepo) Save(t *Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[t.ID] = t
	return nil
}

func (r *InMemoryRepo) FindByID(id string) (*Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return t, nil
}

func (r *InMemoryRepo) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.transactions[id]
	return ok
}

// Executes a Find operation and returns a list of Transactions
// The `transactionOptions` can be used to specify options for the operation
func (r *InMemoryRepo) Find(transactionOptions ...*options.TransactionOptions) ([]*Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Transaction

	if len(transactionOptions) == 0 {
		for _, t := range r.transactions {
			result = append(result, t)
		}
		return result, nil
	}

	opt := transactionOptions[0]
	ids := toSet(opt.IDs)
	statuses := toSet(opt.Statuses)

	for _, t := range r.transactions {
		if len(ids) > 0 {
			if _, ok := ids[t.ID]; !ok {
				continue
			}
		}
		if len(statuses) > 0 {
			if _, ok := statuses[string(t.Status)]; !ok {
				continue
			}
		}
		if opt.Amount != nil && !opt.Amount.Contains(t.Amount) {
			continue
		}
		if opt.Timestamp != nil && !opt.Timestamp.Contains(t.CreatedAt) {
			continue
		}
		result = append(result, t)
	}

	return result, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
