package v1

import (
	"errors"
	"io"
	"net/http"

	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumes storage.ResumeStorage
}

// NewResumeHandler serves stored resumes on an authenticated group.
func NewResumeHandler(uploads *gin.RouterGroup, resumes storage.ResumeStorage) {
	handler := &ResumeHandler{resumes: resumes}
	uploads.GET("/cvs/:filename", handler.Download)
}

// Download godoc
// @Summary      Download a resume
// @Tags         uploads
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        filename  path  string  true  "Stored resume filename"
// @Success      200
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /uploads/cvs/{filename} [get]
func (h *ResumeHandler) Download(c *gin.Context) {
	rc, contentType, err := h.resumes.Open(c.Request.Context(), c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			c.Error(apperror.NotFound("File not found"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		c.Error(apperror.Internal(err))
	}
}
