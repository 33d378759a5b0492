package project

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
)

// Service resolves projects and maintains their funding aggregate.
type Service struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *Service {
	return &Service{storage: storage}
}

// GetProject returns apperrors.ErrProjectNotFound when absent.
func (s *Service) GetProject(ctx context.Context, id int64) (models.Project, error) {
	return s.storage.Project().GetByID(ctx, id)
}

// GetProjectByTransactionID resolves the project a past payment funded.
func (s *Service) GetProjectByTransactionID(ctx context.Context, transactionID int64) (models.Project, error) {
	return s.storage.Project().GetByTransactionID(ctx, transactionID)
}

// AdjustCurrentFunding moves the aggregate by delta (negative on refund).
// The aggregate is maintained incrementally, never recomputed from pledges.
func (s *Service) AdjustCurrentFunding(ctx context.Context, projectID int64, delta decimal.Decimal) (models.Project, error) {
	updated, err := s.storage.Project().AddCurrentFunding(ctx, projectID, delta)
	if err != nil {
		return updated, fmt.Errorf("can't update project funding. Err: %w", err)
	}

	return updated, nil
}
