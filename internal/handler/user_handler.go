package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mmark/internal/middleware"
	"github.com/xxxsen/mmark/internal/model"
	"github.com/xxxsen/mmark/internal/pkg/response"
	"github.com/xxxsen/mmark/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type editProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

// Me returns the user resolved by the auth middleware.
func (h *UserHandler) Me(c *gin.Context) {
	response.Success(c, middleware.CurrentUser(c))
}

func (h *UserHandler) EditProfile(c *gin.Context) {
	var req editProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.EditProfile(c.Request.Context(), middleware.CurrentUserID(c), model.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}
