package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/models"
)

type projectRepo struct {
	s *Storage
}

func (r *projectRepo) Create(_ context.Context, project models.Project) (models.Project, error) {
	defer r.s.lock()()

	project.ID = r.s.st.nextID()
	project.CreatedAt = time.Now()

	r.s.st.projects[project.ID] = project
	return project, nil
}

func (r *projectRepo) GetByID(_ context.Context, id int64) (models.Project, error) {
	defer r.s.lock()()

	project, ok := r.s.st.projects[id]
	if !ok {
		return project, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func (r *projectRepo) GetByTransactionID(_ context.Context, transactionID int64) (models.Project, error) {
	defer r.s.lock()()

	transaction, ok := r.s.st.transactions[transactionID]
	if !ok || transaction.FundingID == nil {
		return models.Project{}, apperrors.ErrProjectNotFound
	}

	funding, ok := r.s.st.fundings[*transaction.FundingID]
	if !ok {
		return models.Project{}, apperrors.ErrProjectNotFound
	}

	project, ok := r.s.st.projects[funding.ProjectID]
	if !ok {
		return project, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func (r *projectRepo) AddCurrentFunding(_ context.Context, projectID int64, delta decimal.Decimal) (models.Project, error) {
	defer r.s.lock()()

	project, ok := r.s.st.projects[projectID]
	if !ok {
		return project, apperrors.ErrProjectNotFound
	}

	project.CurrentFunding = project.CurrentFunding.Add(delta)
	r.s.st.projects[projectID] = project
	return project, nil
}
