package inmemory

import (
	"errors"
	"maps"
	"sync"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/payment"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository keeps records by issuer transaction id for the life of
// the process. Records are stored and returned by value.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]payment.TransactionRecord
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		transactions: make(map[string]payment.TransactionRecord),
	}
}

func (r *TransactionRepository) Save(rec payment.TransactionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions[rec.TransactionID] = rec
	return nil
}

func (r *TransactionRepository) FindByID(id string) (payment.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.transactions[id]
	if !ok {
		return payment.TransactionRecord{}, ErrTransactionNotFound
	}
	return rec, nil
}

func (r *TransactionRepository) Transactions() map[string]payment.TransactionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.transactions)
}
