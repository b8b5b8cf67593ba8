package api

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"taskapi/internal/apperr"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Text        string `json:"text"`
	CategoryIDs []uint `json:"category_ids"`
}

// A null category_ids decodes to nil and leaves the categories unchanged.
type updateTaskRequest struct {
	Completed   *bool   `json:"completed"`
	CategoryIDs *[]uint `json:"category_ids"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// decodeJSON reads exactly one JSON object into v and rejects unknown
// fields and mistyped values.
func decodeJSON(c echo.Context, v any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Validation("request body must be a JSON object")
		case errors.As(err, &typeErr):
			if typeErr.Field == "" {
				return apperr.Validation("request body must be a JSON object")
			}
			return apperr.Validation("field %q has the wrong type", typeErr.Field)
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return apperr.Validation("request body is not valid JSON")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return apperr.Validation("unknown field %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		default:
			return err
		}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperr.Validation("request body must contain a single JSON object")
	}
	return nil
}

// parseID accepts positive decimal ids only.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
