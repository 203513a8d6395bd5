package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const jobIDRequired = "Job ID is required"

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers job routes on a group that already requires
// authentication.
func NewJobHandler(jobs *gin.RouterGroup, jobUC domain.JobUsecase, audit *security.AuditLogger) {
	handler := &JobHandler{jobUC: jobUC}

	jobs.GET("/getAllJobs", handler.List)
	jobs.GET("/getJobById", handler.Get)
	jobs.POST("/createJob", middleware.RequireRole(audit, domain.ElevatedRoles...), handler.Create)
	jobs.PUT("/updateJob", handler.Update)
	jobs.DELETE("/deleteJob", handler.Delete)
}

// List godoc
// @Summary      List jobs
// @Description  All jobs, newest first, with the employer's name and email
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobWithEmployer}
// @Failure      401  {object}  response.Response
// @Router       /jobs/getAllJobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "Jobs retrieved", jobs, gin.H{"jobs": jobs})
}

// Get godoc
// @Summary      Get job by id
// @Tags         jobs
// @Produce      json
// @Param        id   query     int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobWithEmployer}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/getJobById [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := queryID(c, "id", jobIDRequired)
	if !ok {
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "Job retrieved", job, gin.H{"job": job})
}

// Create godoc
// @Summary      Create a job
// @Description  Admin or employer. The caller becomes the job's employer.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.CreateJobRequest  true  "Job"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs/createJob [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWith(c, http.StatusCreated, "Job created successfully", job, gin.H{"job": job})
}

// Update godoc
// @Summary      Update a job
// @Description  Merges only the fields present in the body
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   query     int                      true  "Job ID"
// @Param        job  body      domain.UpdateJobRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.JobWithEmployer}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/updateJob [put]
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := queryID(c, "id", jobIDRequired)
	if !ok {
		return
	}

	var req domain.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "Job updated successfully", job, gin.H{"job": job})
}

// Delete godoc
// @Summary      Delete a job
// @Description  Admin or the job's employer
// @Tags         jobs
// @Produce      json
// @Param        id   query     int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/deleteJob [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := queryID(c, "id", jobIDRequired)
	if !ok {
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}
