package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

const (
	resumeField = "cv"

	// mimetype's default read limit; DOCX detection walks the zip entry names.
	sniffLen = 3072
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ResumeFilename derives the stored name from the uploader's display name:
// "Bilawal Zaman" + ".pdf" becomes "Bilawal_Zaman-cv.pdf".
func ResumeFilename(userName, originalName string) string {
	base := whitespaceRun.ReplaceAllString(strings.TrimSpace(userName), "_")
	base = strings.NewReplacer("/", "_", `\`, "_").Replace(base)
	return base + "-cv" + filepath.Ext(originalName)
}

// ResumeUpload accepts at most one PDF or DOCX file in the "cv" multipart
// field and stores it before the handler runs. The stored filename is put on
// the context under domain.KeyResumeFile. Requests that are not multipart pass
// through untouched.
func ResumeUpload(store storage.ResumeStorage, maxBytes int64, audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized, please log in.", nil)
			c.Abort()
			return
		}

		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		form, err := c.MultipartForm()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Error(c, http.StatusBadRequest, fmt.Sprintf("Resume must be at most %d MB", maxBytes>>20), nil)
			} else {
				response.Error(c, http.StatusBadRequest, "Invalid multipart form", nil)
			}
			c.Abort()
			return
		}

		files := form.File[resumeField]
		switch len(files) {
		case 0:
			c.Next()
			return
		case 1:
		default:
			response.Error(c, http.StatusBadRequest, "Only one resume file is allowed", nil)
			c.Abort()
			return
		}

		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Could not read uploaded file", nil)
			c.Abort()
			return
		}
		defer f.Close()

		head := make([]byte, sniffLen)
		n, err := io.ReadFull(f, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			response.Error(c, http.StatusBadRequest, "Could not read uploaded file", nil)
			c.Abort()
			return
		}
		head = head[:n]

		declared := fh.Header.Get("Content-Type")
		result := security.ValidateResume(fh.Filename, declared, head)
		if !result.Valid {
			audit.LogUploadRejected(c.Request.Context(), fh.Filename, c.ClientIP(), c.GetString(string(domain.KeyRequestID)), result.Error)
			response.Error(c, http.StatusUnsupportedMediaType, result.Error, nil)
			c.Abort()
			return
		}

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
			c.Abort()
			return
		}

		name := ResumeFilename(actor.Name, fh.Filename)
		if err := store.Save(c.Request.Context(), name, result.DetectedMIME, f); err != nil {
			logger.Log.Error("failed to store resume", "file", name, "error", err)
			response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyResumeFile), name)
		c.Next()
	}
}
