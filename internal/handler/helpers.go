package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mmark/internal/middleware"
	appErr "github.com/xxxsen/mmark/internal/pkg/errors"
	"github.com/xxxsen/mmark/internal/pkg/response"
)

const msgInvalidID = "Validation failed (numeric string is expected)"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// bindJSON decodes the request body into req and writes a 400 with field messages on
// failure. It reports whether the handler should continue.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	response.ValidationError(c, validationMessages(err))
	return false
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldMessage(fe))
		}
		return out
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s must be a %s", typeErr.Field, typeName(typeErr.Type))}
	}
	if errors.Is(err, io.EOF) {
		return []string{"request body should not be empty"}
	}
	return []string{"request body must be valid JSON"}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " should not be empty"
	case "email":
		return fe.Field() + " must be an email"
	case "url":
		return fe.Field() + " must be a URL address"
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "number"
	default:
		return t.Kind().String()
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status, message := errorStatus(err)
	requestID, _ := c.Get(middleware.ContextRequestIDKey)
	fields := []zap.Field{
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int64("user_id", middleware.CurrentUserID(c)),
		zap.Int("status", status),
		zap.Error(err),
	}
	logger := logutil.GetLogger(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Info("request rejected", fields...)
	}
	response.Error(c, status, message)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, appErr.ErrCredentialsTaken):
		return http.StatusForbidden, "Credentials taken"
	case errors.Is(err, appErr.ErrIncorrectCredentials):
		return http.StatusForbidden, "Incorrect Credentials"
	case errors.Is(err, appErr.ErrAccessDenied):
		return http.StatusForbidden, "Access to resource is denied"
	case errors.Is(err, appErr.ErrUserNotFound):
		return http.StatusForbidden, "User not found"
	case errors.Is(err, appErr.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, appErr.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, appErr.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, appErr.ErrInvalid):
		return http.StatusBadRequest, "Bad request"
	case errors.Is(err, appErr.ErrConflict):
		return http.StatusConflict, "Conflict"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
