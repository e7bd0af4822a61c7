package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mmark/internal/metrics"
	appErr "github.com/xxxsen/mmark/internal/pkg/errors"
	"github.com/xxxsen/mmark/internal/pkg/response"
	"github.com/xxxsen/mmark/internal/service"
)

type AuthHandler struct {
	auth    *service.AuthService
	metrics *metrics.Metrics
}

func NewAuthHandler(auth *service.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{auth: auth, metrics: m}
}

type authRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req authRequest
	if !bindJSON(c, &req) {
		h.metrics.ObserveAuth("signup", metrics.ResultRejected)
		return
	}
	token, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	h.metrics.ObserveAuth("signup", authResult(err))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, tokenResponse{AccessToken: token})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req authRequest
	if !bindJSON(c, &req) {
		h.metrics.ObserveAuth("signin", metrics.ResultRejected)
		return
	}
	token, err := h.auth.Signin(c.Request.Context(), req.Email, req.Password)
	h.metrics.ObserveAuth("signin", authResult(err))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, tokenResponse{AccessToken: token})
}

func authResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, appErr.ErrCredentialsTaken), errors.Is(err, appErr.ErrIncorrectCredentials):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
