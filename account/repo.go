package account

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound signals a lookup for an account id that does not exist.
var ErrNotFound = errors.New("account not found")

// Data store abstraction for accounts.
// FindByID returns the live, shared *Account — not a copy — so callers
// observe in-flight mutations made under the account's lock.
type Repo interface {
	Save(*Account) error
	FindByID(id string) (*Account, error)
	Exists(id string) bool
}

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps accounts in a mutex-guarded map for the lifetime of the
// process. The repo mutex guards the map structure only; account contents
// are protected by each account's own lock.
type InMemoryRepo struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{accounts: make(map[string]*Account)}
}

func (r *InMemoryRepo) Save(a *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
	return nil
}

func (r *InMemoryRepo) FindByID(id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return a, nil
}

func (r *InMemoryRepo) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.accounts[id]
	return ok
}
