package v1

import (
	"errors"
	"net/http"
	"strconv"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
	audit  *security.AuditLogger
}

func NewAuthHandler(users *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config, audit *security.AuditLogger) {
	handler := &AuthHandler{
		authUC: authUC,
		config: cfg,
		audit:  audit,
	}

	users.POST("/login", handler.Login)
	users.POST("/logout", handler.Logout)
	users.GET("/session-check", handler.SessionCheck)
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  *domain.Actor `json:"user"`
}

// Login godoc
// @Summary      Log in
// @Description  Verify email and password, open a session cookie and return a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Response{data=LoginResponse}
// @Failure      400  {object}  response.Response
// @Router       /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	requestID := c.GetString(string(domain.KeyRequestID))
	result, err := h.authUC.Login(c.Request.Context(), req)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			h.audit.LogLoginFailed(c.Request.Context(), req.Email, c.ClientIP(), requestID, appErr.Message)
		}
		c.Error(err)
		return
	}

	h.setSessionCookie(c, result.SessionID, int(h.config.SessionTTL().Seconds()))
	h.audit.LogLoginSuccess(c.Request.Context(), result.User.Email, c.ClientIP(), requestID)

	response.SuccessWith(c, http.StatusOK, "Login successful", LoginResponse{
		Token: result.Token,
		User:  &result.User,
	}, gin.H{"token": result.Token, "user": &result.User})
}

// Logout godoc
// @Summary      Log out
// @Description  Destroy the current session. Succeeds without a session.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.SessionID(c, h.config.SessionCookieName)
	if err := h.authUC.Logout(c.Request.Context(), sessionID); err != nil {
		c.Error(err)
		return
	}

	if actor := middleware.ActorFrom(c); actor != nil {
		h.audit.Log(c.Request.Context(), security.AuditEvent{
			Event:        security.EventLogout,
			SubjectType:  "user_id",
			SubjectValue: strconv.FormatInt(actor.UserID, 10),
			IP:           c.ClientIP(),
			RequestID:    c.GetString(string(domain.KeyRequestID)),
		})
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// SessionCheck godoc
// @Summary      Session status
// @Description  Report whether the session cookie belongs to a live session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.SessionStatus}
// @Router       /users/session-check [get]
func (h *AuthHandler) SessionCheck(c *gin.Context) {
	status := h.authUC.SessionCheck(c.Request.Context(), middleware.SessionID(c, h.config.SessionCookieName))
	fields := gin.H{"isAuthenticated": status.IsAuthenticated}
	if status.User != nil {
		fields["user"] = status.User
	}
	response.SuccessWith(c, http.StatusOK, "Session status", status, fields)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.SessionCookieName, value, maxAge, "/", "", h.config.IsProduction(), true)
}
