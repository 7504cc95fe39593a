package http

import (
	"net/http"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/coolcare/coolcare/pkg/httpx"
)

// JobsHandler serves the worker's own jobs.
type JobsHandler struct {
	JobService *service.JobService
	// Location interprets naive timestamps in requests.
	Location *time.Location
}

// HandleList lists the caller's jobs, newest appointment first.
//
//	@Summary		List jobs
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status			query		string	false	"scheduled, active, completed or cancelled"
//	@Param			status_filter	query		string	false	"Alias of status"
//	@Success		200				{array}		coolcaresdk.Job
//	@Failure		400				{object}	coolcaresdk.APIError
//	@Failure		401				{object}	coolcaresdk.APIError
//	@Router			/jobs [get].
func (h *JobsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	jobs, err := h.JobService.List(r.Context(), userID, queryAlias(r, "status", "status_filter"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJobs(jobs))
}

// HandleToday lists today's jobs, earliest first.
//
//	@Summary		Today's jobs
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		coolcaresdk.Job
//	@Failure		401	{object}	coolcaresdk.APIError
//	@Router			/jobs/today [get].
func (h *JobsHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	jobs, err := h.JobService.Today(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJobs(jobs))
}

// HandleGet returns one job.
//
//	@Summary		Get job
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Job ID"
//	@Success		200	{object}	coolcaresdk.Job
//	@Failure		404	{object}	coolcaresdk.APIError
//	@Router			/jobs/{id} [get].
func (h *JobsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	j, err := h.JobService.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJob(j))
}

// HandleCreate creates a job owned by the caller.
//
//	@Summary		Create job
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coolcaresdk.JobRequest	true	"Job fields"
//	@Success		200		{object}	coolcaresdk.Job
//	@Failure		400		{object}	coolcaresdk.APIError
//	@Router			/jobs [post].
func (h *JobsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req coolcaresdk.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := jobPatch(req, h.Location)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	j, err := h.JobService.Create(r.Context(), userID, p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJob(j))
}

// HandleUpdate patches a job. Omitted fields are kept.
//
//	@Summary		Update job
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Job ID"
//	@Param			request	body		coolcaresdk.JobRequest	true	"Fields to change"
//	@Success		200		{object}	coolcaresdk.Job
//	@Failure		400		{object}	coolcaresdk.APIError
//	@Failure		404		{object}	coolcaresdk.APIError
//	@Router			/jobs/{id} [put].
func (h *JobsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req coolcaresdk.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := jobPatch(req, h.Location)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	j, err := h.JobService.Update(r.Context(), userID, r.PathValue("id"), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJob(j))
}

// HandleDelete removes a job.
//
//	@Summary		Delete job
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Job ID"
//	@Success		200	{object}	coolcaresdk.MessageResponse
//	@Failure		404	{object}	coolcaresdk.APIError
//	@Router			/jobs/{id} [delete].
func (h *JobsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.JobService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, coolcaresdk.MessageResponse{Message: "Job deleted"})
}

// HandleStats returns the caller's dashboard counters.
//
//	@Summary		Dashboard statistics
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	coolcaresdk.DashboardStats
//	@Router			/dashboard/stats [get].
func (h *JobsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	stats, err := h.JobService.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStats(stats))
}

// HandleOptimizeRoute proposes a visiting order for a day.
//
//	@Summary		Optimize route
//	@Description	Greedy nearest-neighbour ordering of the day's jobs that have coordinates.
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Produce		json
//	@Param			date		query		string	true	"Day as YYYY-MM-DD"
//	@Param			date_str	query		string	false	"Alias of date"
//	@Success		200			{object}	coolcaresdk.RouteResponse
//	@Failure		400			{object}	coolcaresdk.APIError
//	@Router			/jobs/route/optimize [get].
func (h *JobsHandler) HandleOptimizeRoute(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	res, err := h.JobService.OptimizeRoute(r.Context(), userID, queryAlias(r, "date", "date_str"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, coolcaresdk.RouteResponse{
		Order:           res.Order,
		Jobs:            toJobs(res.Jobs),
		TotalDistanceKm: res.TotalDistanceKm,
	})
}
