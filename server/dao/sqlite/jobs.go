package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dekarrin/coins/server/dao"
	"github.com/google/uuid"
)

type JobsDB struct {
	db *sql.DB
}

func (repo *JobsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		source TEXT NOT NULL,
		submitted INTEGER NOT NULL,
		lex_error_count INTEGER NOT NULL,
		syntax_error_count INTEGER NOT NULL,
		semantic_error_count INTEGER NOT NULL,
		warning_count INTEGER NOT NULL,
		codegen_ran INTEGER NOT NULL,
		generated_code TEXT NOT NULL,
		symbol_snapshot TEXT NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *JobsDB) Create(ctx context.Context, job dao.Job) (dao.Job, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Job{}, fmt.Errorf("could not generate ID: %w", err)
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO jobs (id, user_id, source, submitted, lex_error_count, syntax_error_count, semantic_error_count, warning_count, codegen_ran, generated_code, symbol_snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		convertToDB_UUID(newUUID), convertToDB_UUID(job.UserID), job.Source, convertToDB_Time(job.Submitted),
		job.LexErrorCount, job.SyntaxErrorCount, job.SemanticErrorCount, job.WarningCount,
		boolToDB(job.CodegenRan), job.GeneratedCode, convertToDB_ByteSlice(job.SymbolSnapshot),
	)
	if err != nil {
		return dao.Job{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *JobsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Job, error) {
	row := repo.db.QueryRowContext(ctx, jobSelectCols+` FROM jobs WHERE id = ?;`, convertToDB_UUID(id))
	return scanJob(row.Scan)
}

func (repo *JobsDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Job, error) {
	rows, err := repo.db.QueryContext(ctx, jobSelectCols+` FROM jobs WHERE user_id = ? ORDER BY submitted ASC;`, convertToDB_UUID(userID))
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (repo *JobsDB) GetAll(ctx context.Context) ([]dao.Job, error) {
	rows, err := repo.db.QueryContext(ctx, jobSelectCols+` FROM jobs ORDER BY submitted ASC;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (repo *JobsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Job, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *JobsDB) Close() error {
	return nil
}

const jobSelectCols = `SELECT id, user_id, source, submitted, lex_error_count, syntax_error_count, semantic_error_count, warning_count, codegen_ran, generated_code, symbol_snapshot`

func scanJobs(rows *sql.Rows) ([]dao.Job, error) {
	var all []dao.Job
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return all, err
		}
		all = append(all, job)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func scanJob(scan func(dest ...any) error) (dao.Job, error) {
	var job dao.Job
	var id, userID, submitted, snapshot string
	var codegenRan int64

	err := scan(&id, &userID, &job.Source, &submitted,
		&job.LexErrorCount, &job.SyntaxErrorCount, &job.SemanticErrorCount, &job.WarningCount,
		&codegenRan, &job.GeneratedCode, &snapshot,
	)
	if err != nil {
		return job, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &job.ID); err != nil {
		return job, err
	}
	if err := convertFromDB_UUID(userID, &job.UserID); err != nil {
		return job, err
	}
	var submittedUnix int64
	if _, err := fmt.Sscanf(submitted, "%d", &submittedUnix); err != nil {
		return job, fmt.Errorf("%w: stored submitted time %q is invalid", dao.ErrDecodingFailure, submitted)
	}
	if err := convertFromDB_Time(submittedUnix, &job.Submitted); err != nil {
		return job, err
	}
	job.CodegenRan = codegenRan != 0
	if err := convertFromDB_ByteSlice(snapshot, &job.SymbolSnapshot); err != nil {
		return job, err
	}

	return job, nil
}

func boolToDB(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
