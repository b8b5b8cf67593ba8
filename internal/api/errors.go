package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskapi/internal/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes every failure as {"error": "..."}. Unclassified errors
// are logged and reported without detail.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var httpErr *echo.HTTPError
	if kind := apperr.KindOf(err); kind != apperr.KindInternal {
		status = statusFor(kind)
		message = apperr.Message(err)
	} else if errors.As(err, &httpErr) {
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	} else {
		req := c.Request()
		log.Printf("[error] %s %s: %v", req.Method, req.URL.Path, err)
		message = "internal server error"
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorResponse{Error: message})
	}
	if err != nil {
		log.Printf("[error] write error response: %v", err)
	}
}
