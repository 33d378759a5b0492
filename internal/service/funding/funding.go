package funding

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
)

// Service manages funding pledge records.
type Service struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *Service {
	return &Service{storage: storage}
}

// CreateFunding records an active pledge linking the backer account to the
// project.
func (s *Service) CreateFunding(ctx context.Context, project models.Project, backer models.Account, amount decimal.Decimal) (models.Funding, error) {
	created, err := s.storage.Funding().Create(ctx, models.Funding{
		ProjectID: project.ID,
		BackerID:  backer.ID,
		Amount:    amount,
		Status:    models.FundingStatusActive,
	})
	if err != nil {
		return created, fmt.Errorf("can't create funding. Err: %w", err)
	}

	return created, nil
}

// CancelFunding flips the pledge to cancelled and returns the updated row.
// Cancelling an already-cancelled pledge fails with
// apperrors.ErrFundingAlreadyCancelled; a second refund must not silently
// succeed.
func (s *Service) CancelFunding(ctx context.Context, fundingID int64) (models.Funding, error) {
	return s.storage.Funding().Cancel(ctx, fundingID)
}
