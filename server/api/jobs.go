package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dekarrin/coins/server/dao"
	"github.com/dekarrin/coins/server/middle"
	"github.com/dekarrin/coins/server/result"
	"github.com/dekarrin/coins/server/serr"
)

// HTTPCreateJob returns a HandlerFunc that compiles a source submission and
// persists the result as a job. Authentication is optional: unauthenticated
// submissions are recorded against the zero UUID.
func (api API) HTTPCreateJob() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateJob)
}

func (api API) epCreateJob(req *http.Request) result.Result {
	var submitReq JobSubmitRequest
	if err := parseJSON(req, &submitReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	var who dao.User
	if loggedIn, _ := req.Context().Value(middle.AuthLoggedIn).(bool); loggedIn {
		who = req.Context().Value(middle.AuthUser).(dao.User)
	}

	job, err := api.Backend.SubmitJob(req.Context(), submitReq.Source, who.ID)
	if err != nil {
		if errors.Is(err, serr.ErrEmptySource) {
			return result.BadRequest(err.Error(), "empty source")
		}
		return result.InternalServerError("could not run compile job: " + err.Error())
	}

	resp := jobToModel(job)
	return result.Created(resp, "user '%s' submitted compile job %s", userLabel(who), job.ID)
}

// HTTPGetJob returns a HandlerFunc that retrieves a previously submitted job,
// including its decoded symbol table. Only the submitting user or an admin
// may retrieve a job that has an owner.
func (api API) HTTPGetJob() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetJob)
}

func (api API) epGetJob(req *http.Request) result.Result {
	id := requireIDParam(req)

	job, err := api.Backend.GetJob(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not retrieve job: " + err.Error())
	}

	if job.UserID != (dao.User{}).ID {
		user := req.Context().Value(middle.AuthUser).(dao.User)
		if user.ID != job.UserID && user.Role != dao.Admin {
			return result.Forbidden("user '%s' (role %s) get job %s: forbidden", user.Username, user.Role, id)
		}
	}

	resp := jobToModel(job)

	syms, err := api.Backend.GetJobSymbols(job)
	if err != nil {
		return result.InternalServerError("could not decode symbol table: " + err.Error())
	}
	resp.Symbols = make([]SymbolModel, len(syms))
	for i, s := range syms {
		resp.Symbols[i] = SymbolModel{
			Name:         s.Name,
			Category:     s.Category.String(),
			Type:         s.DeclaredType,
			CurrentValue: s.CurrentValue,
		}
	}

	return result.OK(resp, "job %s retrieved", id)
}

// HTTPGetOwnJobs returns a HandlerFunc that lists every job submitted by the
// logged-in user.
func (api API) HTTPGetOwnJobs() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetOwnJobs)
}

func (api API) epGetOwnJobs(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	jobs, err := api.Backend.GetJobsForUser(req.Context(), user.ID)
	if err != nil {
		return result.InternalServerError("could not retrieve jobs: " + err.Error())
	}

	resp := make([]JobModel, len(jobs))
	for i, j := range jobs {
		resp[i] = jobToModel(j)
	}
	return result.OK(resp, "user '%s' got %d job(s)", user.Username, len(resp))
}

// HTTPDeleteJob returns a HandlerFunc that deletes a previously submitted
// job. Only the submitting user or an admin may delete it.
func (api API) HTTPDeleteJob() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteJob)
}

func (api API) epDeleteJob(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	existing, err := api.Backend.GetJob(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not retrieve job: " + err.Error())
	}
	if existing.UserID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete job %s: forbidden", user.Username, user.Role, id)
	}

	if _, err := api.Backend.DeleteJob(req.Context(), id); err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not delete job: " + err.Error())
	}

	return result.NoContent("user '%s' deleted job %s", user.Username, id)
}

func jobToModel(job dao.Job) JobModel {
	return JobModel{
		URI:                PathPrefix + "/jobs/" + job.ID.String(),
		ID:                 job.ID.String(),
		Submitted:          job.Submitted.Format(time.RFC3339),
		LexErrorCount:      job.LexErrorCount,
		SyntaxErrorCount:   job.SyntaxErrorCount,
		SemanticErrorCount: job.SemanticErrorCount,
		WarningCount:       job.WarningCount,
		CodegenRan:         job.CodegenRan,
		GeneratedCode:      job.GeneratedCode,
	}
}

func userLabel(u dao.User) string {
	if u.Username == "" {
		return "unauthed client"
	}
	return u.Username
}
