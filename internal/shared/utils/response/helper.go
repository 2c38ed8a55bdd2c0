package response

import (
	"net/http"

	"flytau/internal/shared/faults"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a fault kind to an HTTP status and writes the standard
// error envelope. Unclassified errors become 500s with a generic message so
// internals never leak to the client.
func RespondError(c *gin.Context, err error) {
	code := statusForKind(faults.KindOf(err))
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	RespondJSON(c, "error", code, message, nil, nil)
}

func statusForKind(kind faults.Kind) int {
	switch kind {
	case faults.KindValidation:
		return http.StatusBadRequest
	case faults.KindNotFound:
		return http.StatusNotFound
	case faults.KindInvalidState:
		return http.StatusConflict
	case faults.KindSeatConflict:
		return http.StatusConflict
	case faults.KindUnauthorized:
		return http.StatusForbidden
	case faults.KindTimeWindow:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
