// Package dao provides data access objects for use in the Coins compile-job
// server: a Store holding a user repository (API-key holder accounts) and a
// job repository (submitted compilations and their results), grounded on the
// teacher's server/dao.Store shape.
package dao

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = fmt.Errorf("a uniqueness constraint was violated")
	ErrNotFound            = fmt.Errorf("the requested resource was not found")
	ErrDecodingFailure     = fmt.Errorf("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories available to the compile service.
type Store interface {
	Users() UserRepository
	Jobs() JobRepository
	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID
	Username       string
	Password       string
	Email          *mail.Address
	Role           Role
	Created        time.Time
	Modified       time.Time
	LastLogoutTime time.Time
	LastLoginTime  time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
	Close() error
}

// Job is one submitted compilation and, once it has run, its result. A Job
// with a zero UserID was submitted by an unauthenticated caller.
type Job struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Source    string
	Submitted time.Time

	LexErrorCount      int
	SyntaxErrorCount   int
	SemanticErrorCount int
	WarningCount       int

	CodegenRan    bool
	GeneratedCode string

	// SymbolSnapshot is the rezi-encoded []symtab.Symbol captured at the end
	// of semantic analysis, so a later request for the symbol table report
	// does not require recompiling the source.
	SymbolSnapshot []byte
}

// Errored reports whether the job's compilation produced any error (lex,
// syntax, or semantic); warnings do not count.
func (j Job) Errored() bool {
	return j.LexErrorCount > 0 || j.SyntaxErrorCount > 0 || j.SemanticErrorCount > 0
}

type JobRepository interface {
	Create(ctx context.Context, job Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Job, error)
	GetAll(ctx context.Context) ([]Job, error)
	Delete(ctx context.Context, id uuid.UUID) (Job, error)
	Close() error
}
