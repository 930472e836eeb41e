package storage

import (
	"context"
	"sync"
)

// MemoryRepository keeps records in memory. It backs tests and ephemeral
// runs where no data files are wanted.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts []AccountRecord
	products []ProductRecord
}

func NewMemoryRepository(accounts []AccountRecord, products []ProductRecord) *MemoryRepository {
	return &MemoryRepository{
		accounts: append([]AccountRecord(nil), accounts...),
		products: append([]ProductRecord(nil), products...),
	}
}

func (r *MemoryRepository) LoadAccounts(_ context.Context) ([]AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]AccountRecord(nil), r.accounts...), nil
}

func (r *MemoryRepository) LoadProducts(_ context.Context) ([]ProductRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ProductRecord(nil), r.products...), nil
}

func (r *MemoryRepository) SaveAccounts(_ context.Context, accounts []AccountRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append([]AccountRecord(nil), accounts...)
	return nil
}
