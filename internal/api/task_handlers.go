package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskapi/internal/apperr"
	"taskapi/internal/service"
)

func (s *Server) listTasks(c echo.Context) error {
	var categoryID *uint
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
		if err != nil {
			return apperr.Validation("category must be an integer id")
		}
		cid := uint(id)
		categoryID = &cid
	}

	tasks, err := s.tasks.List(c.Request().Context(), currentUserID(c), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponses(tasks))
}

func (s *Server) createTask(c echo.Context) error {
	var req createTaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	task, err := s.tasks.CreateTask(c.Request().Context(), currentUserID(c), service.TaskInput{
		Text:        req.Text,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newTaskResponse(*task))
}

func (s *Server) updateTask(c echo.Context) error {
	taskID, ok := parseID(c.Param("id"))
	if !ok {
		return apperr.NotFound("task not found")
	}

	var req updateTaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	task, err := s.tasks.UpdateTask(c.Request().Context(), currentUserID(c), taskID, service.TaskUpdate{
		Completed:   req.Completed,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(*task))
}

func (s *Server) deleteTask(c echo.Context) error {
	taskID, ok := parseID(c.Param("id"))
	if !ok {
		return apperr.NotFound("task not found")
	}

	if err := s.tasks.DeleteTask(c.Request().Context(), currentUserID(c), taskID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
