package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
)

// Service creates and resolves immutable transaction records.
type Service struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *Service {
	return &Service{storage: storage}
}

// CreateTransaction persists a transaction record. funding is nil for pure
// charges. Amount positivity is guaranteed upstream; no validation here.
func (s *Service) CreateTransaction(
	ctx context.Context,
	funding *models.Funding,
	sender models.Account,
	receiver models.Account,
	amount decimal.Decimal,
	txType string,
) (models.Transaction, error) {
	t := models.Transaction{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Amount:     amount,
		Type:       txType,
	}
	if funding != nil {
		t.FundingID = &funding.ID
	}

	created, err := s.storage.Transaction().Create(ctx, t)
	if err != nil {
		return created, fmt.Errorf("can't create transaction. Err: %w", err)
	}

	return created, nil
}

// GetTransaction returns apperrors.ErrTransactionNotFound when absent.
func (s *Service) GetTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	return s.storage.Transaction().GetByID(ctx, id)
}
