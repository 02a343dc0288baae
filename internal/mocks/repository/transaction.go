package repository

import (
	"context"

	domainrepo "quill/internal/domain/repository"
)

// TransactionManager is a pass-through stand-in for the real transaction
// manager. It runs the callback against a fixed factory, or fails immediately
// when Err is set.
type TransactionManager struct {
	Factory domainrepo.RepositoryFactory
	Err     error
}

func (m *TransactionManager) Execute(_ context.Context, fn func(domainrepo.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}

// RepositoryFactory hands out the repositories it was built with.
type RepositoryFactory struct {
	Users domainrepo.UserRepository
	Posts domainrepo.PostRepository
}

func (f *RepositoryFactory) UserRepo() domainrepo.UserRepository {
	return f.Users
}

func (f *RepositoryFactory) PostRepo() domainrepo.PostRepository {
	return f.Posts
}
