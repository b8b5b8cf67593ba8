package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskapi/internal/apperr"
)

func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.categories.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCategoryResponses(categories))
}

func (s *Server) createCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	category, err := s.categories.Create(c.Request().Context(), currentUserID(c), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newCategoryResponse(*category))
}

func (s *Server) deleteCategory(c echo.Context) error {
	categoryID, ok := parseID(c.Param("id"))
	if !ok {
		return apperr.NotFound("category not found")
	}

	if err := s.categories.Delete(c.Request().Context(), currentUserID(c), categoryID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
