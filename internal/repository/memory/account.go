package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

type accountRepo struct {
	s *Storage
}

func (r *accountRepo) Create(_ context.Context, account models.Account) (models.Account, error) {
	defer r.s.lock()()

	now := time.Now()
	account.ID = r.s.st.nextID()
	account.CreatedAt = now
	account.UpdatedAt = now
	if account.Balance.IsZero() {
		account.Balance = decimal.Zero
	}

	r.s.st.accounts[account.ID] = account
	return account, nil
}

func (r *accountRepo) GetByID(_ context.Context, id int64, _ bool) (models.Account, error) {
	defer r.s.lock()()

	account, ok := r.s.st.accounts[id]
	if !ok {
		return account, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func (r *accountRepo) GetByUsername(_ context.Context, username string, _ bool) (models.Account, error) {
	defer r.s.lock()()

	for _, account := range r.s.st.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return models.Account{}, apperrors.ErrAccountNotFound
}

func (r *accountRepo) GetByProjectID(_ context.Context, projectID int64, _ bool) (models.Account, error) {
	defer r.s.lock()()

	for _, account := range r.s.st.accounts {
		if account.ProjectID != nil && *account.ProjectID == projectID {
			return account, nil
		}
	}
	return models.Account{}, apperrors.ErrAccountNotFound
}

func (r *accountRepo) GetReceiverByTransactionID(_ context.Context, transactionID int64, _ bool) (models.Account, error) {
	defer r.s.lock()()

	transaction, ok := r.s.st.transactions[transactionID]
	if !ok {
		return models.Account{}, apperrors.ErrAccountNotFound
	}

	account, ok := r.s.st.accounts[transaction.ReceiverID]
	if !ok {
		return account, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func (r *accountRepo) SaveBalance(_ context.Context, accountID int64, balance decimal.Decimal) (models.Account, error) {
	defer r.s.lock()()

	account, ok := r.s.st.accounts[accountID]
	if !ok {
		return account, apperrors.ErrAccountNotFound
	}

	account.Balance = balance
	account.UpdatedAt = time.Now()
	r.s.st.accounts[accountID] = account
	return account, nil
}
