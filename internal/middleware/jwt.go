package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mmark/internal/model"
	appErr "github.com/xxxsen/mmark/internal/pkg/errors"
	"github.com/xxxsen/mmark/internal/pkg/response"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

func JWTAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, appErr.ErrUnauthorized) {
				response.Error(c, http.StatusUnauthorized, "Unauthorized")
				return
			}
			logutil.GetLogger(c.Request.Context()).Error("authenticate request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// CurrentUser returns the user attached by JWTAuth, or nil on unauthenticated routes.
func CurrentUser(c *gin.Context) *model.User {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}

func CurrentUserID(c *gin.Context) int64 {
	value, _ := c.Get(ContextUserIDKey)
	userID, _ := value.(int64)
	return userID
}
