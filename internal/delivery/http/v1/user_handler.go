package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(users *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users.POST("/createUser", handler.Create)

	protected := users.Group("", middleware.RequireAuth())
	{
		protected.GET("/getUsers", handler.List)
		protected.GET("/:id", handler.Get)
		protected.PUT("/updateUser/:id", handler.Update)
	}
}

// Create godoc
// @Summary      Sign up
// @Description  Create an account. The role is always "user".
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      domain.CreateUserRequest  true  "New user"
// @Success      201  {object}  response.Response{data=domain.User}
// @Failure      400  {object}  response.Response
// @Router       /users/createUser [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	user, err := h.userUC.CreateUser(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", user)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Failure      401  {object}  response.Response
// @Router       /users/getUsers [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUC.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", users)
}

// Get godoc
// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userUC.GetUser(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", user)
}

// Update godoc
// @Summary      Update user
// @Description  Self or admin. Only an admin may change the role.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "User ID"
// @Param        user  body      domain.UpdateUserRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/updateUser/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	user, err := h.userUC.UpdateUser(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated successfully", user)
}
