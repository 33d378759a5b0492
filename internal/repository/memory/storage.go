// Package memory holds an in-memory repository.Storage used by unit tests.
// It mirrors the postgres contract, including unit-of-work rollback: InTx
// runs against a snapshot that replaces the live state only on success.
package memory

import (
	"context"
	"sync"

	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/repository"
)

type state struct {
	seq          int64
	accounts     map[int64]models.Account
	transactions map[int64]models.Transaction
	fundings     map[int64]models.Funding
	projects     map[int64]models.Project
}

func (st *state) nextID() int64 {
	st.seq++
	return st.seq
}

func (st *state) clone() *state {
	c := &state{
		seq:          st.seq,
		accounts:     make(map[int64]models.Account, len(st.accounts)),
		transactions: make(map[int64]models.Transaction, len(st.transactions)),
		fundings:     make(map[int64]models.Funding, len(st.fundings)),
		projects:     make(map[int64]models.Project, len(st.projects)),
	}

	for id, a := range st.accounts {
		c.accounts[id] = a
	}
	for id, t := range st.transactions {
		c.transactions[id] = t
	}
	for id, f := range st.fundings {
		c.fundings[id] = f
	}
	for id, p := range st.projects {
		c.projects[id] = p
	}

	return c
}

type Storage struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
}

func NewStorage() *Storage {
	return &Storage{
		mu: &sync.Mutex{},
		st: &state{
			accounts:     make(map[int64]models.Account),
			transactions: make(map[int64]models.Transaction),
			fundings:     make(map[int64]models.Funding),
			projects:     make(map[int64]models.Project),
		},
	}
}

func (s *Storage) Account() repository.AccountRepo {
	return &accountRepo{s: s}
}

func (s *Storage) Transaction() repository.TransactionRepo {
	return &transactionRepo{s: s}
}

func (s *Storage) Funding() repository.FundingRepo {
	return &fundingRepo{s: s}
}

func (s *Storage) Project() repository.ProjectRepo {
	return &projectRepo{s: s}
}

// InTx serializes whole units of work under one mutex, which also gives
// the "no two units read a stale balance" guarantee the postgres backend
// gets from row locks. fn runs against a snapshot; on error the snapshot
// is dropped and the live state stays untouched.
func (s *Storage) InTx(ctx context.Context, fn func(repository.Storage) error) error {
	if s.inTx {
		// Already inside a unit of work, join it.
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	child := &Storage{mu: s.mu, st: snapshot, inTx: true}

	if err := fn(child); err != nil {
		return err
	}

	*s.st = *snapshot
	return nil
}

// lock guards single-statement access; inside a unit of work the mutex is
// already held by InTx.
func (s *Storage) lock() func() {
	if s.inTx {
		return func() {}
	}

	s.mu.Lock()
	return s.mu.Unlock
}
