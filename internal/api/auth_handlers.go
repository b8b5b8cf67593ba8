package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskapi/internal/service"
)

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	res, err := s.auth.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newAuthResponse(res))
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	res, err := s.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAuthResponse(res))
}

func newAuthResponse(res *service.AuthResult) authResponse {
	return authResponse{
		AccessToken: res.Token,
		User:        userResponse{ID: res.User.ID, Email: res.User.Email},
	}
}
