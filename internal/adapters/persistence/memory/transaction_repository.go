package memory

import (
	"context"
	"sort"
	"sync"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// transactionRepository implements repositories.TransactionRepository.
// The transaction log is append-only; there is no delete.
type transactionRepository struct {
	mu           sync.RWMutex
	transactions map[uint]domain.Transaction
	order        []uint
	nextID       uint
}

// NewTransactionRepository creates a new in-memory transaction repository
func NewTransactionRepository() repositories.TransactionRepository {
	return &transactionRepository{transactions: make(map[uint]domain.Transaction), nextID: 1}
}

// Create stores a new transaction and assigns its ID
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = r.nextID
	r.nextID++
	r.transactions[tx.ID] = *tx
	r.order = append(r.order, tx.ID)
	return nil
}

// GetByID gets a transaction by ID
func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.transactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tx, nil
}

// Update merges patch into the stored transaction. Only description and
// status are patchable; a completed transaction is immutable in principle
// and the ledger service never rewrites one.
func (r *transactionRepository) Update(ctx context.Context, id uint, patch *domain.TransactionPatch) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, ok := r.transactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Description != nil {
		tx.Description = patch.Description
	}
	if patch.Status != nil {
		tx.Status = *patch.Status
	}
	r.transactions[id] = tx
	return &tx, nil
}

// List lists all transactions in insertion order
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txs := make([]*domain.Transaction, 0, len(r.order))
	for _, id := range r.order {
		tx := r.transactions[id]
		txs = append(txs, &tx)
	}
	return txs, nil
}

// ListByMemberID lists a member's transactions in insertion order
func (r *transactionRepository) ListByMemberID(ctx context.Context, memberID uint) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var txs []*domain.Transaction
	for _, id := range r.order {
		if tx := r.transactions[id]; tx.MemberID == memberID {
			txs = append(txs, &tx)
		}
	}
	return txs, nil
}

// ListRecent lists up to limit transactions, most recent date first
func (r *transactionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txs := make([]*domain.Transaction, 0, len(r.order))
	for _, id := range r.order {
		tx := r.transactions[id]
		txs = append(txs, &tx)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}
