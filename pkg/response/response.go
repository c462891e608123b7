package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

// ErrorBody is the wire shape for failures: a human-readable message plus a
// stable machine-readable code that the website and chat concierge dispatch on.
type ErrorBody struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details []appErrors.FieldError `json:"details,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message, Code: appErr.Code, Details: appErr.Details})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
