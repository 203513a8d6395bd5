package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes on the authenticated
// jobs group. Resumes are accepted on applyForJob only.
func NewApplicationHandler(
	jobs *gin.RouterGroup,
	appUC domain.ApplicationUsecase,
	resumes storage.ResumeStorage,
	maxUploadBytes int64,
	audit *security.AuditLogger,
) {
	handler := &ApplicationHandler{appUC: appUC}

	jobs.POST("/applyForJob", middleware.ResumeUpload(resumes, maxUploadBytes, audit), handler.Apply)
	jobs.GET("/getJobApplicationById", handler.ListByJob)
	jobs.GET("/getAllJobApplications", handler.List)
	jobs.PUT("/updateApplicationStatus", handler.UpdateStatus)
	jobs.GET("/exportApplications", middleware.RequireRole(audit, domain.ElevatedRoles...), handler.Export)
}

// Apply godoc
// @Summary      Apply for a job
// @Description  Multipart form with an optional coverLetter and an optional PDF or DOCX file in "cv"
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           query     int     true   "Job ID"
// @Param        coverLetter  formData  string  false  "Cover letter"
// @Param        cv           formData  file    false  "Resume (PDF or DOCX)"
// @Success      201  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      415  {object}  response.Response
// @Router       /jobs/applyForJob [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := queryID(c, "id", jobIDRequired)
	if !ok {
		return
	}

	var req domain.ApplyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			c.Error(apperror.BadRequest("Invalid request body"))
			return
		}
	}
	if name := c.GetString(string(domain.KeyResumeFile)); name != "" {
		req.CV = &name
	}

	app, err := h.appUC.Apply(c.Request.Context(), middleware.ActorFrom(c), jobID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWith(c, http.StatusCreated, "Application submitted successfully", app, gin.H{"application": app})
}

// ListByJob godoc
// @Summary      Applications for a job
// @Tags         applications
// @Produce      json
// @Param        jobId  query     int  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.ApplicationWithApplicant}
// @Failure      400  {object}  response.Response
// @Router       /jobs/getJobApplicationById [get]
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID, ok := queryID(c, "jobId", jobIDRequired)
	if !ok {
		return
	}

	apps, err := h.appUC.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "Applications retrieved", apps, gin.H{"applications": apps})
}

// List godoc
// @Summary      Applications visible to the caller
// @Description  Admin sees all, employer sees applications to their jobs, user sees their own
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ApplicationWithApplicant}
// @Failure      401  {object}  response.Response
// @Router       /jobs/getAllJobApplications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.appUC.ListForActor(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "Applications retrieved", apps, gin.H{"applications": apps})
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Admin or the employer owning the job. Status is reviewed, accepted or rejected.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        applicationId  query     int                                    true  "Application ID"
// @Param        status         body      domain.UpdateApplicationStatusRequest  true  "New status"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/updateApplicationStatus [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	appID, ok := queryID(c, "applicationId", "Application ID is required")
	if !ok {
		return
	}

	var req domain.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.appUC.UpdateStatus(c.Request.Context(), middleware.ActorFrom(c), appID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWith(c, http.StatusOK, "Application status updated", app, gin.H{"application": app})
}

// Export godoc
// @Summary      Export applications
// @Description  The caller's role-scoped application list as an xlsx workbook
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs/exportApplications [get]
func (h *ApplicationHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.appUC.ExportForActor(c.Request.Context(), middleware.ActorFrom(c), &buf); err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
