package handlers

import (
	"errors"
	"net/http"

	"barberbook/services/scheduling"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a scheduling error to its HTTP status and writes the
// standard error body. Unrecognized errors are treated as internal and
// never leak details to the client.
func respondError(c *gin.Context, err error) {
	code := scheduling.CodeOf(err)

	var status int
	switch code {
	case scheduling.CodeInvalidRequest:
		status = http.StatusBadRequest
	case scheduling.CodeNotFound:
		status = http.StatusNotFound
	case scheduling.CodeForbidden:
		status = http.StatusForbidden
	case scheduling.CodeConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	message := "An unexpected error occurred. Please try again later."
	var se *scheduling.Error
	if errors.As(err, &se) && se.Code != scheduling.CodeInternal {
		message = se.Message
	} else {
		utils.GetLogger().Error("Request failed", zap.Error(err))
	}

	c.JSON(status, gin.H{"error": message, "code": code})
}
