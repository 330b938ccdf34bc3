package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/loopers/commerce-api/internal/platform/apperror"
	"github.com/loopers/commerce-api/internal/platform/logger"
)

// StatusFor maps an error kind to the HTTP status returned to clients.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as {"error", "code"}. Internal failures are logged
// with op and replaced by a generic message.
func RespondError(c *gin.Context, op string, err error) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)
	if status == http.StatusInternalServerError {
		logger.Error(op+": unhandled error", err, "request_id", RequestIDFrom(c))
		c.JSON(status, gin.H{"error": "internal server error", "code": "internal"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": apperror.CodeOf(err)})
}

// RespondBadRequest is used when the payload cannot be bound at all.
func RespondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error(), "code": "request.invalid"})
}

var ErrInvalidID = apperror.Validation("request.id.invalid", "id must be a positive integer")

// ParamID parses a positive int64 path parameter. On failure it writes a 400
// and returns false.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, "ParamID", ErrInvalidID)
		return 0, false
	}
	return id, true
}
