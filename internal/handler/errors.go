package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/service"
	"go.uber.org/zap"
)

// domainErrors are failures a caller can act on. Anything else is logged.
var domainErrors = []error{
	service.ErrRegistrationFailed,
	service.ErrInvalidCredentials,
	service.ErrInvalidAccessToken,
	service.ErrInvalidRefreshToken,
	service.ErrCourseNotFound,
	service.ErrLessonNotFound,
	service.ErrTitleRequired,
	service.ErrDuplicateOrder,
	service.ErrNoActiveLessons,
	service.ErrDuplicateOrdersInRequest,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError writes {"error": message}. The status is 404 when err matches
// one of notFound and 400 otherwise.
func respondError(c *gin.Context, err error, notFound ...error) {
	respondErrorWithStatus(c, http.StatusBadRequest, err, notFound...)
}

func respondErrorWithStatus(c *gin.Context, status int, err error, notFound ...error) {
	for _, target := range notFound {
		if errors.Is(err, target) {
			status = http.StatusNotFound
			break
		}
	}

	if !isDomainError(err) {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

// pathID parses a uuid path parameter, writing a 400 when it is malformed
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
