package http

import (
	"net/http"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/coolcare/coolcare/pkg/httpx"
)

// AdminHandler serves the dispatcher console. Routes are wrapped with
// RequireRole(admin).
type AdminHandler struct {
	AdminService *service.AdminService
	Location     *time.Location
}

// HandleListJobs lists every worker's jobs.
//
//	@Summary		List all jobs
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Status filter"
//	@Success		200		{array}		coolcaresdk.Job
//	@Failure		403		{object}	coolcaresdk.APIError
//	@Router			/admin/jobs [get].
func (h *AdminHandler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.AdminService.AllJobs(r.Context(), queryAlias(r, "status", "status_filter"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJobs(jobs))
}

// HandleCreateJob creates a job for the worker named by user_id.
//
//	@Summary		Create job for a worker
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coolcaresdk.JobRequest	true	"Job fields with user_id"
//	@Success		200		{object}	coolcaresdk.Job
//	@Failure		400		{object}	coolcaresdk.APIError
//	@Failure		404		{object}	coolcaresdk.APIError	"Worker not found"
//	@Router			/admin/jobs [post].
func (h *AdminHandler) HandleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req coolcaresdk.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := jobPatch(req, h.Location)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	j, err := h.AdminService.CreateJob(r.Context(), deref(req.UserID), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJob(j))
}

// HandleUpdateJob patches any job; user_id reassigns it.
//
//	@Summary		Update any job
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Job ID"
//	@Param			request	body		coolcaresdk.JobRequest	true	"Fields to change"
//	@Success		200		{object}	coolcaresdk.Job
//	@Failure		404		{object}	coolcaresdk.APIError
//	@Router			/admin/jobs/{id} [put].
func (h *AdminHandler) HandleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var req coolcaresdk.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := jobPatch(req, h.Location)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	j, err := h.AdminService.UpdateJob(r.Context(), r.PathValue("id"), deref(req.UserID), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJob(j))
}

// HandleDeleteJob removes any job.
//
//	@Summary		Delete any job
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Job ID"
//	@Success		200	{object}	coolcaresdk.MessageResponse
//	@Failure		404	{object}	coolcaresdk.APIError
//	@Router			/admin/jobs/{id} [delete].
func (h *AdminHandler) HandleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.AdminService.DeleteJob(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, coolcaresdk.MessageResponse{Message: "Job deleted"})
}

// HandleStats aggregates over all jobs.
//
//	@Summary		System statistics
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	coolcaresdk.DashboardStats
//	@Router			/admin/stats [get].
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminService.SystemStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStats(stats))
}

// HandleListUsers lists every account.
//
//	@Summary		List users
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	coolcaresdk.User
//	@Router			/admin/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUsers(users))
}

// HandleUpdateUser changes a user's name, role or active flag.
//
//	@Summary		Update user
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"User ID"
//	@Param			request	body		coolcaresdk.AdminUpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	coolcaresdk.User
//	@Failure		400		{object}	coolcaresdk.APIError
//	@Failure		404		{object}	coolcaresdk.APIError
//	@Router			/admin/users/{id} [put].
func (h *AdminHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req coolcaresdk.AdminUpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.AdminService.UpdateUser(r.Context(), r.PathValue("id"), domain.UserPatch{
		Name:     req.Name,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
