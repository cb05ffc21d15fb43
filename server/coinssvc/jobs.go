package coinssvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/dekarrin/coins"
	"github.com/dekarrin/coins/internal/coins/symtab"
	"github.com/dekarrin/coins/server/dao"
	"github.com/dekarrin/coins/server/serr"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// SubmitJob runs the full Coins compile pipeline over source and persists
// the result as a new Job owned by who (the zero UUID for an unauthenticated
// submission). The symbol table is snapshotted and rezi-encoded so a later
// report request does not need to recompile.
func (svc Service) SubmitJob(ctx context.Context, source string, who uuid.UUID) (dao.Job, error) {
	if source == "" {
		return dao.Job{}, serr.ErrEmptySource
	}

	res := coins.Compile(source)

	symBytes := rezi.EncBinary(res.Syms.All())

	job := dao.Job{
		UserID: who,
		Source: source,

		LexErrorCount:      len(res.LexErrors),
		SyntaxErrorCount:   len(res.SyntaxErrors),
		SemanticErrorCount: len(res.SemanticErrors),
		WarningCount:       len(res.Warnings),

		CodegenRan:    res.CodegenRan,
		GeneratedCode: res.Generated,

		SymbolSnapshot: symBytes,
	}

	created, err := svc.DB.Jobs().Create(ctx, job)
	if err != nil {
		return dao.Job{}, serr.WrapDB("could not persist compile job", err)
	}

	return created, nil
}

// GetJob retrieves a previously submitted job by ID.
func (svc Service) GetJob(ctx context.Context, id uuid.UUID) (dao.Job, error) {
	job, err := svc.DB.Jobs().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Job{}, serr.ErrNotFound
		}
		return dao.Job{}, serr.WrapDB("could not retrieve job", err)
	}
	return job, nil
}

// GetJobsForUser retrieves every job submitted by who, oldest first.
func (svc Service) GetJobsForUser(ctx context.Context, who uuid.UUID) ([]dao.Job, error) {
	jobs, err := svc.DB.Jobs().GetAllByUser(ctx, who)
	if err != nil {
		return nil, serr.WrapDB("could not retrieve jobs", err)
	}
	return jobs, nil
}

// GetJobSymbols decodes the rezi-encoded symbol table snapshot stored
// alongside job.
func (svc Service) GetJobSymbols(job dao.Job) ([]symtab.Symbol, error) {
	var syms []symtab.Symbol
	n, err := rezi.DecBinary(job.SymbolSnapshot, &syms)
	if err != nil {
		return nil, serr.New("REZI decode", err, dao.ErrDecodingFailure)
	}
	if n != len(job.SymbolSnapshot) {
		return nil, serr.New(fmt.Sprintf("REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(job.SymbolSnapshot)), dao.ErrDecodingFailure)
	}
	return syms, nil
}

// DeleteJob removes a previously submitted job.
func (svc Service) DeleteJob(ctx context.Context, id uuid.UUID) (dao.Job, error) {
	job, err := svc.DB.Jobs().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Job{}, serr.ErrNotFound
		}
		return dao.Job{}, serr.WrapDB("could not delete job", err)
	}
	return job, nil
}
