package response

import (
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	SuccessWith(c, code, message, data, nil)
}

// SuccessWith sends a success response and repeats fields at the top level,
// next to the envelope, for clients that read e.g. `token` or `jobs` directly.
// Envelope keys win over fields of the same name.
func SuccessWith(c *gin.Context, code int, message string, data interface{}, fields gin.H) {
	res := Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	}
	if len(fields) == 0 {
		c.JSON(code, res)
		return
	}

	body := gin.H{}
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = res.Success
	body["message"] = res.Message
	if data != nil {
		body["data"] = data
	}
	if res.RequestID != "" {
		body["request_id"] = res.RequestID
	}
	c.JSON(code, body)
}

// Error sends an error response. When err is nil the message is also
// reported under `error`.
func Error(c *gin.Context, code int, message string, err interface{}) {
	if err == nil {
		err = message
	}
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}
