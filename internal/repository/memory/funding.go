package memory

import (
	"context"
	"time"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

type fundingRepo struct {
	s *Storage
}

func (r *fundingRepo) Create(_ context.Context, funding models.Funding) (models.Funding, error) {
	defer r.s.lock()()

	funding.ID = r.s.st.nextID()
	funding.CreatedAt = time.Now()
	if funding.Status == "" {
		funding.Status = models.FundingStatusActive
	}

	r.s.st.fundings[funding.ID] = funding
	return funding, nil
}

func (r *fundingRepo) GetByID(_ context.Context, id int64) (models.Funding, error) {
	defer r.s.lock()()

	funding, ok := r.s.st.fundings[id]
	if !ok {
		return funding, apperrors.ErrFundingNotFound
	}
	return funding, nil
}

func (r *fundingRepo) Cancel(_ context.Context, id int64) (models.Funding, error) {
	defer r.s.lock()()

	funding, ok := r.s.st.fundings[id]
	if !ok {
		return funding, apperrors.ErrFundingNotFound
	}
	if funding.Status != models.FundingStatusActive {
		return funding, apperrors.ErrFundingAlreadyCancelled
	}

	funding.Status = models.FundingStatusCancelled
	r.s.st.fundings[id] = funding
	return funding, nil
}
