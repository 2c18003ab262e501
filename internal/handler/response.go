package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "docvault/internal/errors"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// respond writes a success envelope.
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// respondError maps a domain error onto the failure envelope.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, Response{
		StatusCode: httpErr.StatusCode,
		Message:    httpErr.Message,
		Error:      httpErr.Code,
	})
}

// respondBadRequest is for bind/validation failures before the service runs.
func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Response{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Error:      "VALIDATION_ERROR",
	})
}

// ErrorHandler normalizes errors echo raises itself (auth failures, routing)
// into the same envelope the handlers use.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal Server Error"
	if httpErr, ok := err.(*echo.HTTPError); ok {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	_ = c.JSON(status, Response{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}
