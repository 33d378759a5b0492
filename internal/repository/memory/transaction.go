package memory

import (
	"context"
	"time"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

type transactionRepo struct {
	s *Storage
}

func (r *transactionRepo) Create(_ context.Context, transaction models.Transaction) (models.Transaction, error) {
	defer r.s.lock()()

	transaction.ID = r.s.st.nextID()
	transaction.CreatedAt = time.Now()

	r.s.st.transactions[transaction.ID] = transaction
	return transaction, nil
}

func (r *transactionRepo) GetByID(_ context.Context, id int64) (models.Transaction, error) {
	defer r.s.lock()()

	transaction, ok := r.s.st.transactions[id]
	if !ok {
		return transaction, apperrors.ErrTransactionNotFound
	}
	return transaction, nil
}
