package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobledger/internal/middleware"
	"jobledger/internal/service"
	"jobledger/pkg/pagination"
	"jobledger/pkg/response"
)

type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler sets up the routing dependencies for Job endpoints
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup) {
	jobs := router.Group("/jobs", middleware.RequireAuth())
	{
		jobs.POST("", h.CreateJob)
		jobs.GET("", h.ListJobs)
		jobs.GET("/defaults", h.GetDefaults)
		jobs.GET("/:id", h.GetJob)
		jobs.PUT("/:id", h.UpdateJob)
		jobs.PUT("/:id/status", h.UpdateStatus)
		jobs.POST("/:id/invoice-number", h.AssignInvoiceNumber)
		jobs.DELETE("/:id", h.DeleteJob)
	}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateJob handles POST /jobs
// @Summary      Create a new job
// @Description  Creates a job for one of the user's customers and computes its cost totals
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.JobRequest  true  "Create Job Payload"
// @Success      201      {object}  response.Response{data=model.Job}
// @Failure      400      {object}  response.Response
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, job))
}

// ListJobs handles GET /jobs with filtering and pagination
// @Summary      List jobs
// @Description  Retrieves a paginated list of the user's jobs, optionally filtered by status, customer and a search term over title and description
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Status filter"
// @Param        customer_id  query     string  false  "Customer ID filter"
// @Param        search       query     string  false  "Search term"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Number of items per page (default 20)"
// @Success      200          {object}  response.Response{data=object}
// @Failure      500          {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page := pagination.Parse(c)
	filter := service.JobFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Search:     c.Query("search"),
		Page:       page.Page,
		Limit:      page.Limit,
	}

	jobs, total, err := h.jobService.ListJobs(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch jobs"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope("jobs", jobs, total, page)))
}

// GetDefaults handles GET /jobs/defaults
// @Summary      Get job form defaults
// @Description  Returns the default day rate and quote validity window used to pre-populate a new job form
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.JobDefaults}
// @Failure      500  {object}  response.Response
// @Router       /jobs/defaults [get]
func (h *JobHandler) GetDefaults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	defaults, err := h.jobService.Defaults(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch defaults"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, defaults))
}

// GetJob handles GET /jobs/:id
// @Summary      Get job by ID
// @Description  Fetch a single job with its customer by UUID
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=model.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, job))
}

// UpdateJob handles PUT /jobs/:id
// @Summary      Update job
// @Description  Replaces a job's details with the submitted payload and recomputes its cost totals
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Job ID"
// @Param        payload  body      service.JobRequest  true  "Update Job Payload"
// @Success      200      {object}  response.Response{data=model.Job}
// @Failure      400      {object}  response.Response
// @Router       /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, job))
}

// UpdateStatus handles PUT /jobs/:id/status
// @Summary      Update job status
// @Description  Moves a job to the given status
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Job ID"
// @Param        payload  body      statusRequest  true  "New Status"
// @Success      200      {object}  response.Response{data=model.Job}
// @Failure      400      {object}  response.Response
// @Router       /jobs/{id}/status [put]
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	job, err := h.jobService.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, job))
}

// AssignInvoiceNumber handles POST /jobs/:id/invoice-number
// @Summary      Assign invoice number
// @Description  Assigns the next sequential invoice number to a job and stamps the invoice date if not already set
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=model.Job}
// @Failure      400  {object}  response.Response
// @Router       /jobs/{id}/invoice-number [post]
func (h *JobHandler) AssignInvoiceNumber(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.AssignInvoiceNumber(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, job))
}

// DeleteJob handles DELETE /jobs/:id
// @Summary      Delete job
// @Description  Permanently deletes a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Job deleted successfully"))
}
