package inmemory_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infrastructure/persistence/inmemory"
)

func TestTransactionRepository_SaveAndFind(t *testing.T) {
	repo := inmemory.NewTransactionRepository()

	_, err := repo.FindByID("txn_1")
	require.ErrorIs(t, err, inmemory.ErrTransactionNotFound)

	require.NoError(t, repo.Save(payment.TransactionRecord{TransactionID: "txn_1", Amount: 100}))
	require.NoError(t, repo.Save(payment.TransactionRecord{TransactionID: "txn_1", Amount: 200}))

	rec, err := repo.FindByID("txn_1")
	require.NoError(t, err)
	require.Equal(t, int64(200), rec.Amount, "save overwrites an existing id")
}

func TestTransactionRepository_ShouldReturnCopies(t *testing.T) {
	repo := inmemory.NewTransactionRepository()
	require.NoError(t, repo.Save(payment.TransactionRecord{TransactionID: "txn_1", Currency: "CLP"}))

	rec, _ := repo.FindByID("txn_1")
	rec.Currency = "USD"

	again, _ := repo.FindByID("txn_1")
	require.Equal(t, "CLP", again.Currency)
}

func TestTransactionRepository_ConcurrentWrites(t *testing.T) {
	repo := inmemory.NewTransactionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Save(payment.TransactionRecord{TransactionID: fmt.Sprintf("txn_%d", i)})
		}(i)
	}
	wg.Wait()

	require.Len(t, repo.Transactions(), 100)
}
