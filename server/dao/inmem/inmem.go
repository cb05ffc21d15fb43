// Package inmem provides an in-memory dao.Store, useful for local
// development and tests without a sqlite file on disk, grounded on the
// teacher's server/dao/inmem package.
package inmem

import (
	"fmt"

	"github.com/dekarrin/coins/server/dao"
)

type store struct {
	users *InMemoryUsersRepository
	jobs  *InMemoryJobsRepository
}

// NewDatastore creates a fresh, empty in-memory dao.Store.
func NewDatastore() dao.Store {
	return &store{
		users: NewUsersRepository(),
		jobs:  NewJobsRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Jobs() dao.JobRepository {
	return s.jobs
}

func (s *store) Close() error {
	var err error

	if uErr := s.users.Close(); uErr != nil {
		err = uErr
	}
	if jErr := s.jobs.Close(); jErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, jErr)
		} else {
			err = jErr
		}
	}

	return err
}
