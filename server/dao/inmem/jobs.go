package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/coins/server/dao"
	"github.com/google/uuid"
)

func NewJobsRepository() *InMemoryJobsRepository {
	return &InMemoryJobsRepository{
		jobs: make(map[uuid.UUID]dao.Job),
	}
}

type InMemoryJobsRepository struct {
	jobs map[uuid.UUID]dao.Job
}

func (imjr *InMemoryJobsRepository) Close() error {
	return nil
}

func (imjr *InMemoryJobsRepository) Create(ctx context.Context, job dao.Job) (dao.Job, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Job{}, fmt.Errorf("could not generate ID: %w", err)
	}

	job.ID = newUUID
	job.Submitted = time.Now()

	imjr.jobs[job.ID] = job
	return job, nil
}

func (imjr *InMemoryJobsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Job, error) {
	job, ok := imjr.jobs[id]
	if !ok {
		return dao.Job{}, dao.ErrNotFound
	}
	return job, nil
}

func (imjr *InMemoryJobsRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Job, error) {
	var all []dao.Job
	for _, j := range imjr.jobs {
		if j.UserID == userID {
			all = append(all, j)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Submitted.Before(all[j].Submitted)
	})
	return all, nil
}

func (imjr *InMemoryJobsRepository) GetAll(ctx context.Context) ([]dao.Job, error) {
	all := make([]dao.Job, 0, len(imjr.jobs))
	for _, j := range imjr.jobs {
		all = append(all, j)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Submitted.Before(all[j].Submitted)
	})
	return all, nil
}

func (imjr *InMemoryJobsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Job, error) {
	job, ok := imjr.jobs[id]
	if !ok {
		return dao.Job{}, dao.ErrNotFound
	}
	delete(imjr.jobs, id)
	return job, nil
}
