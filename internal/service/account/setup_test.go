package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository/memory"
)

type fixture struct {
	storage        *memory.Storage
	backer         models.Account
	project        models.Project
	projectAccount models.Account
}

// newFixture seeds one backer account and one project with its receiving
// account.
func newFixture(t *testing.T, backerBalance, projectBalance, currentFunding int64) fixture {
	t.Helper()

	storage := memory.NewStorage()

	backer, err := storage.Account().Create(t.Context(), models.Account{
		Username: "backer",
		Balance:  decimal.NewFromInt(backerBalance),
	})
	require.NoError(t, err)

	project, err := storage.Project().Create(t.Context(), models.Project{
		Title:          "garden robot",
		FundingGoal:    decimal.NewFromInt(100000),
		CurrentFunding: decimal.NewFromInt(currentFunding),
	})
	require.NoError(t, err)

	projectAccount, err := storage.Account().Create(t.Context(), models.Account{
		Username:  "creator",
		ProjectID: &project.ID,
		Balance:   decimal.NewFromInt(projectBalance),
	})
	require.NoError(t, err)

	return fixture{
		storage:        storage,
		backer:         backer,
		project:        project,
		projectAccount: projectAccount,
	}
}

func (f fixture) account(t *testing.T, id int64) models.Account {
	t.Helper()

	account, err := f.storage.Account().GetByID(t.Context(), id, false)
	require.NoError(t, err)
	return account
}

func (f fixture) reloadProject(t *testing.T) models.Project {
	t.Helper()

	project, err := f.storage.Project().GetByID(t.Context(), f.project.ID)
	require.NoError(t, err)
	return project
}

func equalInt(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, got.Equal(decimal.NewFromInt(want)), "expected %d, got %s (%v)", want, got, msgAndArgs)
}
